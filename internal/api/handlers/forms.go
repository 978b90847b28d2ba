package handlers

import (
	"net/http"

	"jobform-api/internal/api/middleware"
	"jobform-api/internal/renderer"
	"jobform-api/internal/services"
	"jobform-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FormHandler serves a job posting's application form: the recruiter's full
// replace, the candidate's rendered view, submissions and opening drafts.
type FormHandler struct {
	schemas     services.FormSchemaService
	submissions services.SubmissionService
	drafts      services.DraftService
	validator   *validator.Validate
	log         *zap.Logger
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(
	schemas services.FormSchemaService,
	submissions services.SubmissionService,
	drafts services.DraftService,
	validate *validator.Validate,
	log *zap.Logger,
) *FormHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FormHandler{schemas: schemas, submissions: submissions, drafts: drafts, validator: validate, log: log}
}

// GetForm godoc
// @Summary      Get a job posting's application form
// @Description  Returns the stored field definitions in order and the widget each one renders as.
// @Tags         forms
// @Produce      json
// @Param        id path      string true  "Job posting ID" Format(uuid)
// @Success      200 {object}  dto.FormResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/form [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	defs, widgets, err := h.submissions.RenderForm(c.Request.Context(), jobID)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "load form")
		return
	}
	if widgets == nil {
		widgets = []renderer.Widget{}
	}

	c.JSON(http.StatusOK, dto.FormResponse{JobPostingID: jobID, Fields: defs, Widgets: widgets})
}

// ReplaceForm godoc
// @Summary      Replace a job posting's application form
// @Description  Replaces every field of the form with the given list. Names are derived from labels when omitted and order follows list position. An empty list clears the form.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id   path      string                 true  "Job posting ID" Format(uuid)
// @Param        form body      dto.ReplaceFormRequest true  "Full field list"
// @Success      200 {object}  dto.FormResponse
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      422 {object}  map[string]interface{} "Form has invalid fields"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/form [put]
// @Security     BearerAuth
func (h *FormHandler) ReplaceForm(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	var req dto.ReplaceFormRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.schemas.Authorize(ctx, jobID, userID); err != nil {
		respondServiceError(c, h.log, err, "Job posting", "replace form")
		return
	}

	saved, err := h.schemas.ReplaceSchema(ctx, jobID, req.Definitions(jobID))
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "replace form")
		return
	}

	widgets, err := renderer.Render(saved)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "render form")
		return
	}

	c.JSON(http.StatusOK, dto.FormResponse{JobPostingID: jobID, Fields: saved, Widgets: widgets})
}

// SubmitApplication godoc
// @Summary      Submit answers to a job posting's form
// @Description  Validates every answer against its field and returns the answer bundle. Nothing is stored.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Job posting ID" Format(uuid)
// @Param        answers body      dto.SubmitApplicationRequest true  "Answers keyed by field name"
// @Success      200 {object}  dto.SubmissionResponse
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      422 {object}  map[string]interface{} "Some answers are invalid"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/form/submissions [post]
func (h *FormHandler) SubmitApplication(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}

	bundle, err := h.submissions.Submit(c.Request.Context(), jobID, req.Answers)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "submit application")
		return
	}

	c.JSON(http.StatusOK, dto.SubmissionResponse{JobPostingID: jobID, Answers: bundle})
}

// OpenDraft godoc
// @Summary      Open an editing draft of the form
// @Description  Starts an editing session seeded from the stored form.
// @Tags         drafts
// @Produce      json
// @Param        id path      string true  "Job posting ID" Format(uuid)
// @Success      201 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job posting not found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/form/drafts [post]
// @Security     BearerAuth
func (h *FormHandler) OpenDraft(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job posting")
	if !ok {
		return
	}

	draft, err := h.drafts.Open(c.Request.Context(), jobID, userID)
	if err != nil {
		respondServiceError(c, h.log, err, "Job posting", "open draft")
		return
	}

	c.JSON(http.StatusCreated, MapDraftToResponse(draft))
}
