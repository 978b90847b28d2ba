package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"jobform-api/internal/formfield"
	"jobform-api/internal/models"
	"jobform-api/internal/renderer"
	"jobform-api/internal/services"
	"jobform-api/internal/storage"
	"jobform-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saveFailedMessage is shown when persisting a draft fails; the draft is kept.
const saveFailedMessage = "Failed to save form, please retry"

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Namespace()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s long", fieldName, fieldError.Param())
		case "fieldtype":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of %v", fieldName, models.FieldTypes)
		}
	}
	return errorsMap
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// It writes the 400 response itself and reports false on failure.
func bindAndValidate(c *gin.Context, v *validator.Validate, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	if err := v.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return false
	}
	return true
}

func parseUUIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s ID format", what)})
		return uuid.Nil, false
	}
	return id, true
}

func parseIndexParam(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil || idx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s: must be a non-negative integer", name)})
		return 0, false
	}
	return idx, true
}

// respondServiceError maps a service error to its HTTP response. what names
// the resource for not-found messages; action is used in the 500 message.
func respondServiceError(c *gin.Context, log *zap.Logger, err error, what, action string) {
	var schemaErr *formfield.SchemaError
	var subErr *renderer.SubmissionError

	switch {
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Form has invalid fields", "details": schemaErr.Issues})
	case errors.As(err, &subErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Some answers are invalid", "details": subErr.Errors})
	case errors.Is(err, services.ErrSaveFailed):
		log.Error("form save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": saveFailedMessage})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrDraftBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Draft is busy with another request, try again"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict: " + err.Error()})
	default:
		log.Error("request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// MapJobPostingToResponse converts a models.JobPosting to a dto.JobPostingResponse
func MapJobPostingToResponse(job *models.JobPosting) dto.JobPostingResponse {
	return dto.JobPostingResponse{
		ID:           job.ID,
		EmployerID:   job.EmployerID,
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

// MapDraftToResponse converts a stored draft session to a dto.DraftResponse
func MapDraftToResponse(d *storage.DraftSession) dto.DraftResponse {
	return dto.DraftResponse{
		ID:           d.ID,
		JobPostingID: d.Snapshot.Draft.JobPostingID,
		State:        d.Snapshot.State,
		Revision:     d.Snapshot.Revision,
		Fields:       d.Snapshot.Draft.Fields,
		UpdatedAt:    d.UpdatedAt,
	}
}
