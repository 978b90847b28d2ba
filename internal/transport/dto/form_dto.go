// internal/transport/dto/form_dto.go
package dto

import (
	"jobform-api/internal/models"
	"jobform-api/internal/renderer"

	"github.com/google/uuid"
)

// FieldDefinitionRequest is one field of a full form replace. Labels and
// options are checked by schema validation so every problem is reported per
// field.
type FieldDefinitionRequest struct {
	Name        string           `json:"name" validate:"max=64"`
	Label       string           `json:"label" validate:"max=200"`
	Type        models.FieldType `json:"type" validate:"required,fieldtype"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty" validate:"max=100,dive,max=200"`
	Placeholder *string          `json:"placeholder,omitempty" validate:"omitempty,max=200"`
	HelpText    *string          `json:"help_text,omitempty" validate:"omitempty,max=500"`
}

// ReplaceFormRequest replaces a job posting's whole form. An empty list clears it.
type ReplaceFormRequest struct {
	Fields []FieldDefinitionRequest `json:"fields" validate:"max=100,dive"`
}

// Definitions converts the request into field definitions in list order.
func (r ReplaceFormRequest) Definitions(jobID uuid.UUID) []models.FieldDefinition {
	defs := make([]models.FieldDefinition, len(r.Fields))
	for i, f := range r.Fields {
		defs[i] = models.FieldDefinition{
			JobPostingID: jobID,
			Name:         f.Name,
			Label:        f.Label,
			Type:         f.Type,
			Required:     f.Required,
			Options:      f.Options,
			Order:        i,
			Placeholder:  f.Placeholder,
			HelpText:     f.HelpText,
		}
	}
	return defs
}

// FormResponse is a job posting's form: the stored fields and the widgets a
// client renders for them.
type FormResponse struct {
	JobPostingID uuid.UUID                `json:"job_posting_id"`
	Fields       []models.FieldDefinition `json:"fields"`
	Widgets      []renderer.Widget        `json:"widgets"`
}

// SubmitApplicationRequest carries a candidate's answers keyed by field name.
type SubmitApplicationRequest struct {
	Answers map[string]any `json:"answers" validate:"required"`
}

// SubmissionResponse is the validated answer bundle.
type SubmissionResponse struct {
	JobPostingID uuid.UUID       `json:"job_posting_id"`
	Answers      renderer.Bundle `json:"answers"`
}
