package routes

import (
	"jobform-api/internal/api/handlers"
	"jobform-api/internal/api/middleware"
	"jobform-api/internal/app"
	"jobform-api/internal/metrics"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	//Create handlers
	jobHandler := handlers.NewJobPostingHandler(app.JobPostingService, app.Validator, app.Logger)
	formHandler := handlers.NewFormHandler(app.FormSchemaService, app.SubmissionService, app.DraftService, app.Validator, app.Logger)
	draftHandler := handlers.NewDraftHandler(app.DraftService, app.Validator, app.Logger)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret, app.Logger)

	// --- Register Resource Routes ---
	RegisterJobRoutes(apiV1, jobHandler, formHandler, authMiddleware)
	RegisterDraftRoutes(apiV1, draftHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck(app.HealthChecks()))
	router.GET("/metrics", metrics.PrometheusHandler())

	app.Logger.Debug("configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
