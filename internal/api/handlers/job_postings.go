package handlers

import (
	"net/http"

	"jobform-api/internal/api/middleware"
	"jobform-api/internal/services"
	"jobform-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// JobPostingHandler holds dependencies for job posting operations.
type JobPostingHandler struct {
	service   services.JobPostingService
	validator *validator.Validate
	log       *zap.Logger
}

// NewJobPostingHandler creates a new JobPostingHandler.
func NewJobPostingHandler(service services.JobPostingService, validate *validator.Validate, log *zap.Logger) *JobPostingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobPostingHandler{service: service, validator: validate, log: log}
}

// CreateJobPosting godoc
// @Summary      Create a job posting
// @Description  Creates a job posting owned by the authenticated recruiter.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobPostingRequest true  "Job posting details"
// @Success      201 {object}  dto.JobPostingResponse "Job posting created"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobPostingHandler) CreateJobPosting(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobPostingRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.EmployerID = employerID

	job, err := h.service.CreateJobPosting(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "create job posting")
		return
	}

	c.JSON(http.StatusCreated, MapJobPostingToResponse(job))
}

// GetJobPosting godoc
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id path      string true  "Job posting ID" Format(uuid)
// @Success      200 {object}  dto.JobPostingResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
func (h *JobPostingHandler) GetJobPosting(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	job, err := h.service.GetJobPosting(c.Request.Context(), jobID)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "retrieve job posting")
		return
	}

	c.JSON(http.StatusOK, MapJobPostingToResponse(job))
}

// DeleteJobPosting godoc
// @Summary      Delete a job posting
// @Description  Deletes a job posting and its whole form. Only the owner may delete it.
// @Tags         jobs
// @Param        id path      string true  "Job posting ID" Format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobPostingHandler) DeleteJobPosting(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	if err := h.service.DeleteJobPosting(c.Request.Context(), jobID, userID); err != nil {
		respondServiceError(c, h.log, err, "Job posting", "delete job posting")
		return
	}

	c.Status(http.StatusNoContent)
}
