package routes

import (
	"jobform-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterDraftRoutes registers the form editing routes. All of them require auth.
func RegisterDraftRoutes(
	rg *gin.RouterGroup,
	draftHandler handlers.DraftHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	drafts := rg.Group("/drafts/:draftId")
	drafts.Use(authMiddleware)
	{
		drafts.GET("", draftHandler.GetDraft)
		drafts.DELETE("", draftHandler.DiscardDraft)

		drafts.POST("/fields", draftHandler.AddField)
		drafts.PATCH("/fields/:index", draftHandler.UpdateField)
		drafts.DELETE("/fields/:index", draftHandler.RemoveField)
		drafts.POST("/fields/:index/move", draftHandler.MoveField)
		drafts.PUT("/order", draftHandler.ReorderFields)

		drafts.POST("/fields/:index/options", draftHandler.AddOption)
		drafts.PUT("/fields/:index/options/:opt", draftHandler.UpdateOption)
		drafts.DELETE("/fields/:index/options/:opt", draftHandler.RemoveOption)

		drafts.POST("/suggestions", draftHandler.SuggestFields)
		drafts.POST("/save", draftHandler.SaveDraft)
	}
}
