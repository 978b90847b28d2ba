package formfield

import (
	"errors"
	"fmt"
	"strings"

	"jobform-api/internal/models"
)

var ErrInvalidSchema = errors.New("invalid form schema")

// Issue codes reported by ValidateSchema.
const (
	CodeLabelRequired   = "label_required"
	CodeOptionsRequired = "options_required"
	CodeInvalidType     = "invalid_type"
	CodeDuplicateName   = "duplicate_name"
)

// Issue describes one field that blocks a save.
type Issue struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Label   string `json:"label,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaError lists every field that failed validation.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("field %d: %s", is.Index+1, is.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSchema, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }

// ValidateSchema checks the rules a schema must satisfy before it is
// persisted. It returns nil or a *SchemaError.
func ValidateSchema(defs []models.FieldDefinition) error {
	var issues []Issue
	seen := make(map[string]int, len(defs))

	for i, d := range defs {
		label := strings.TrimSpace(d.Label)
		add := func(code, msg string) {
			issues = append(issues, Issue{Index: i, Name: d.Name, Label: label, Code: code, Message: msg})
		}

		if label == "" {
			add(CodeLabelRequired, "label is required")
		}
		if !d.Type.Valid() {
			add(CodeInvalidType, fmt.Sprintf("unsupported field type %q", d.Type))
		} else if d.Type.HasOptions() && len(CleanOptions(d.Options)) == 0 {
			add(CodeOptionsRequired, fmt.Sprintf("%s field needs at least one option", d.Type))
		}
		if d.Name != "" {
			if first, dup := seen[d.Name]; dup {
				add(CodeDuplicateName, fmt.Sprintf("name %q is already used by field %d", d.Name, first+1))
			} else {
				seen[d.Name] = i
			}
		}
	}

	if len(issues) > 0 {
		return &SchemaError{Issues: issues}
	}
	return nil
}
