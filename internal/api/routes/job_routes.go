package routes

import (
	"jobform-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers job posting and form routes. Reading a posting,
// its form and submitting answers are public; everything else requires auth.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobPostingHandlerInterface,
	formHandler handlers.FormHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST("", authMiddleware, jobHandler.CreateJobPosting)
		jobs.GET("/:id", jobHandler.GetJobPosting)
		jobs.DELETE("/:id", authMiddleware, jobHandler.DeleteJobPosting)

		jobs.GET("/:id/form", formHandler.GetForm)
		jobs.PUT("/:id/form", authMiddleware, formHandler.ReplaceForm)
		jobs.POST("/:id/form/submissions", formHandler.SubmitApplication)
		jobs.POST("/:id/form/drafts", authMiddleware, formHandler.OpenDraft)
	}
}
