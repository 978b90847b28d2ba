package handlers

import (
	"net/http"

	"jobform-api/internal/api/middleware"
	"jobform-api/internal/services"
	"jobform-api/internal/storage"
	"jobform-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftHandler holds dependencies for draft editing operations.
type DraftHandler struct {
	service   services.DraftService
	validator *validator.Validate
	log       *zap.Logger
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(service services.DraftService, validate *validator.Validate, log *zap.Logger) *DraftHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DraftHandler{service: service, validator: validate, log: log}
}

// draftRequest reads the caller and the draft ID every draft route needs.
func draftRequest(c *gin.Context) (draftID, userID uuid.UUID, ok bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	draftID, ok = parseUUIDParam(c, "draftId", "draft")
	return draftID, userID, ok
}

func (h *DraftHandler) respond(c *gin.Context, draft *storage.DraftSession, err error, action string) {
	if err != nil {
		respondServiceError(c, h.log, err, "Draft", action)
		return
	}
	c.JSON(http.StatusOK, MapDraftToResponse(draft))
}

// GetDraft godoc
// @Summary      Get a draft
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId} [get]
// @Security     BearerAuth
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	draft, err := h.service.Get(c.Request.Context(), draftID, userID)
	h.respond(c, draft, err, "retrieve draft")
}

// AddField godoc
// @Summary      Append a blank field
// @Description  Appends a text field with a generated name and an empty label.
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Success      200 {object}  dto.DraftResponse
// @Failure      404 {object}  map[string]string "Draft not found"
// @Failure      409 {object}  map[string]string "Draft is busy"
// @Router       /drafts/{draftId}/fields [post]
// @Security     BearerAuth
func (h *DraftHandler) AddField(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	draft, err := h.service.AddField(c.Request.Context(), draftID, userID)
	h.respond(c, draft, err, "add field")
}

// UpdateField godoc
// @Summary      Change attributes of a field
// @Description  Only the attributes present in the body change. Changing the label re-derives an auto-generated name.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path      string                 true  "Draft ID" Format(uuid)
// @Param        index   path      int                    true  "Field position"
// @Param        patch   body      dto.UpdateFieldRequest true  "Attributes to change"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Failure      409 {object}  map[string]string "Draft is busy"
// @Router       /drafts/{draftId}/fields/{index} [patch]
// @Security     BearerAuth
func (h *DraftHandler) UpdateField(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	var req dto.UpdateFieldRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	draft, err := h.service.UpdateField(c.Request.Context(), draftID, userID, index, req.Patch())
	h.respond(c, draft, err, "update field")
}

// RemoveField godoc
// @Summary      Remove a field
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Param        index   path      int    true  "Field position"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Index out of range"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/fields/{index} [delete]
// @Security     BearerAuth
func (h *DraftHandler) RemoveField(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	draft, err := h.service.RemoveField(c.Request.Context(), draftID, userID, index)
	h.respond(c, draft, err, "remove field")
}

// MoveField godoc
// @Summary      Move a field to another position
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path      string               true  "Draft ID" Format(uuid)
// @Param        index   path      int                  true  "Current field position"
// @Param        move    body      dto.MoveFieldRequest true  "Target position"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Index out of range"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/fields/{index}/move [post]
// @Security     BearerAuth
func (h *DraftHandler) MoveField(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	from, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	var req dto.MoveFieldRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	draft, err := h.service.MoveField(c.Request.Context(), draftID, userID, from, *req.To)
	h.respond(c, draft, err, "move field")
}

// ReorderFields godoc
// @Summary      Reorder all fields
// @Description  order[i] is the current position of the field that moves to position i.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path      string                   true  "Draft ID" Format(uuid)
// @Param        order   body      dto.ReorderFieldsRequest true  "Permutation of current positions"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Not a permutation"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/order [put]
// @Security     BearerAuth
func (h *DraftHandler) ReorderFields(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	var req dto.ReorderFieldsRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	draft, err := h.service.ReorderFields(c.Request.Context(), draftID, userID, req.Order)
	h.respond(c, draft, err, "reorder fields")
}

// AddOption godoc
// @Summary      Append a choice option
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path      string            true   "Draft ID" Format(uuid)
// @Param        index   path      int               true   "Field position"
// @Param        option  body      dto.OptionRequest false  "Option text, empty by default"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Index out of range"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/fields/{index}/options [post]
// @Security     BearerAuth
func (h *DraftHandler) AddOption(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	var req dto.OptionRequest
	if c.Request.ContentLength != 0 && !bindAndValidate(c, h.validator, &req) {
		return
	}
	draft, err := h.service.AddOption(c.Request.Context(), draftID, userID, index, req.Value)
	h.respond(c, draft, err, "add option")
}

// UpdateOption godoc
// @Summary      Change the text of a choice option
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        draftId path      string            true  "Draft ID" Format(uuid)
// @Param        index   path      int               true  "Field position"
// @Param        opt     path      int               true  "Option position"
// @Param        option  body      dto.OptionRequest true  "Option text"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Index out of range"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/fields/{index}/options/{opt} [put]
// @Security     BearerAuth
func (h *DraftHandler) UpdateOption(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	opt, ok := parseIndexParam(c, "opt")
	if !ok {
		return
	}
	var req dto.OptionRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	draft, err := h.service.UpdateOption(c.Request.Context(), draftID, userID, index, opt, req.Value)
	h.respond(c, draft, err, "update option")
}

// RemoveOption godoc
// @Summary      Remove a choice option
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Param        index   path      int    true  "Field position"
// @Param        opt     path      int    true  "Option position"
// @Success      200 {object}  dto.DraftResponse
// @Failure      400 {object}  map[string]string "Index out of range"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId}/fields/{index}/options/{opt} [delete]
// @Security     BearerAuth
func (h *DraftHandler) RemoveOption(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	opt, ok := parseIndexParam(c, "opt")
	if !ok {
		return
	}
	draft, err := h.service.RemoveOption(c.Request.Context(), draftID, userID, index, opt)
	h.respond(c, draft, err, "remove option")
}

// SuggestFields godoc
// @Summary      Append AI-suggested fields
// @Description  Asks the language model for fields that fit the job posting and appends them. When nothing usable comes back the draft is unchanged and a notice is returned.
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Success      200 {object}  dto.SuggestionsResponse
// @Failure      404 {object}  map[string]string "Draft not found"
// @Failure      409 {object}  map[string]string "Draft is busy"
// @Router       /drafts/{draftId}/suggestions [post]
// @Security     BearerAuth
func (h *DraftHandler) SuggestFields(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	res, err := h.service.Suggest(c.Request.Context(), draftID, userID)
	if err != nil {
		respondServiceError(c, h.log, err, "Draft", "suggest fields")
		return
	}
	c.JSON(http.StatusOK, dto.SuggestionsResponse{
		Draft:  MapDraftToResponse(res.Draft),
		Added:  res.Added,
		Notice: res.Notice,
	})
}

// SaveDraft godoc
// @Summary      Save the draft as the job posting's form
// @Description  Validates the draft and replaces the stored form with it. On failure the draft is kept.
// @Tags         drafts
// @Produce      json
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Success      200 {object}  dto.SaveDraftResponse
// @Failure      404 {object}  map[string]string "Draft not found"
// @Failure      409 {object}  map[string]string "Draft is busy"
// @Failure      422 {object}  map[string]interface{} "Form has invalid fields"
// @Failure      500 {object}  map[string]string "Failed to save form, please retry"
// @Router       /drafts/{draftId}/save [post]
// @Security     BearerAuth
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	res, err := h.service.Save(c.Request.Context(), draftID, userID)
	if err != nil {
		respondServiceError(c, h.log, err, "Draft", "save form")
		return
	}
	c.JSON(http.StatusOK, dto.SaveDraftResponse{Draft: MapDraftToResponse(res.Draft), Fields: res.Fields})
}

// DiscardDraft godoc
// @Summary      Discard a draft
// @Tags         drafts
// @Param        draftId path      string true  "Draft ID" Format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object}  map[string]string "Draft not found"
// @Router       /drafts/{draftId} [delete]
// @Security     BearerAuth
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	draftID, userID, ok := draftRequest(c)
	if !ok {
		return
	}
	if err := h.service.Discard(c.Request.Context(), draftID, userID); err != nil {
		respondServiceError(c, h.log, err, "Draft", "discard draft")
		return
	}
	c.Status(http.StatusNoContent)
}
