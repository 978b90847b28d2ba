// internal/transport/dto/draft_dto.go
package dto

import (
	"time"

	"jobform-api/internal/editor"
	"jobform-api/internal/models"

	"github.com/google/uuid"
)

// UpdateFieldRequest changes the attributes that are present.
type UpdateFieldRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,max=64"`
	Label       *string           `json:"label,omitempty" validate:"omitempty,max=200"`
	Type        *models.FieldType `json:"type,omitempty" validate:"omitempty,fieldtype"`
	Required    *bool             `json:"required,omitempty"`
	Options     *[]string         `json:"options,omitempty" validate:"omitempty,max=100,dive,max=200"`
	Placeholder *string           `json:"placeholder,omitempty" validate:"omitempty,max=200"`
	HelpText    *string           `json:"help_text,omitempty" validate:"omitempty,max=500"`
}

// Patch converts the request for the editor.
func (r UpdateFieldRequest) Patch() editor.FieldPatch {
	return editor.FieldPatch{
		Name:        r.Name,
		Label:       r.Label,
		Type:        r.Type,
		Required:    r.Required,
		Options:     r.Options,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
	}
}

// MoveFieldRequest moves the field at the path index to To.
type MoveFieldRequest struct {
	To *int `json:"to" validate:"required,min=0"`
}

// ReorderFieldsRequest gives, for each new position, the current index of the
// field that goes there.
type ReorderFieldsRequest struct {
	Order []int `json:"order" validate:"required,dive,min=0"`
}

// OptionRequest sets the text of a choice option.
type OptionRequest struct {
	Value string `json:"value" validate:"max=200"`
}

// DraftResponse is a recruiter's editing session.
type DraftResponse struct {
	ID           uuid.UUID           `json:"id"`
	JobPostingID uuid.UUID           `json:"job_posting_id"`
	State        editor.State        `json:"state"`
	Revision     uint64              `json:"revision"`
	Fields       []editor.DraftField `json:"fields"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SuggestionsResponse reports how many suggested fields were added. Notice is
// set when none were.
type SuggestionsResponse struct {
	Draft  DraftResponse `json:"draft"`
	Added  int           `json:"added"`
	Notice string        `json:"notice,omitempty"`
}

// SaveDraftResponse is the draft after a successful save and the persisted form.
type SaveDraftResponse struct {
	Draft  DraftResponse            `json:"draft"`
	Fields []models.FieldDefinition `json:"fields"`
}
