package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Field Type Enum ---
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
)

// FieldTypes lists every supported field type in display order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeNumber,
	FieldTypeEmail,
	FieldTypePhone,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeMultiSelect,
	FieldTypeCheckbox,
	FieldTypeFile,
}

// Valid reports whether ft is one of the supported field types.
func (ft FieldType) Valid() bool {
	for _, t := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether the type is a closed-choice type.
func (ft FieldType) HasOptions() bool {
	return ft == FieldTypeSelect || ft == FieldTypeRadio || ft == FieldTypeMultiSelect
}

// Scan implements the sql.Scanner interface for FieldType
func (ft *FieldType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan FieldType: value is not string or []byte")
		}
	}
	v := FieldType(strVal)
	if !v.Valid() {
		return fmt.Errorf("invalid FieldType value: %s", strVal)
	}
	*ft = v
	return nil
}

// Value implements the driver.Valuer interface for FieldType
func (ft FieldType) Value() (driver.Value, error) {
	return string(ft), nil
}

// JobPosting is the owner of a custom application form.
type JobPosting struct {
	ID           uuid.UUID `json:"id" db:"id"`
	EmployerID   uuid.UUID `json:"employer_id" db:"employer_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Requirements string    `json:"requirements" db:"requirements"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FieldDefinition is one custom question belonging to a job posting.
type FieldDefinition struct {
	ID           uuid.UUID `json:"id" db:"id"` // uuid.Nil until persisted
	JobPostingID uuid.UUID `json:"job_posting_id" db:"job_posting_id"`
	Name         string    `json:"name" db:"name"`
	Label        string    `json:"label" db:"label"`
	Type         FieldType `json:"type" db:"type"`
	Required     bool      `json:"required" db:"required"`
	Options      []string  `json:"options,omitempty" db:"options"`
	Order        int       `json:"order" db:"sort_order"`
	Placeholder  *string   `json:"placeholder,omitempty" db:"placeholder"`
	HelpText     *string   `json:"help_text,omitempty" db:"help_text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// JobContext is the text handed to the suggestion model.
type JobContext struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// FieldSuggestion is one field proposed by the suggestion model.
type FieldSuggestion struct {
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"help_text,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// FileRef points at an uploaded file; the content lives elsewhere.
type FileRef struct {
	ID   string `json:"id,omitempty"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// Empty reports whether the reference points at nothing.
func (f FileRef) Empty() bool {
	return f.ID == "" && f.URL == ""
}
