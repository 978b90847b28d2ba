// Package formfield holds the typed model of a custom application field and
// the rules every persisted schema has to satisfy.
package formfield

import (
	"errors"
	"fmt"
	"strings"

	"jobform-api/internal/models"
)

var ErrUnknownType = errors.New("unknown field type")

// Base carries the attributes shared by every kind.
type Base struct {
	Name        string
	Label       string
	Required    bool
	Placeholder string
	HelpText    string
}

// Common returns the shared attributes.
func (b Base) Common() Base { return b }

// Kind is a closed sum type over the supported field kinds. Consumers
// dispatch with Accept; a new kind means a new Visitor method, so every
// consumer stops compiling until it handles it.
type Kind interface {
	Type() models.FieldType
	Common() Base
	Accept(v Visitor)
	sealed()
}

// Visitor has one method per field kind.
type Visitor interface {
	VisitText(Text)
	VisitTextarea(Textarea)
	VisitNumber(Number)
	VisitEmail(Email)
	VisitPhone(Phone)
	VisitDate(Date)
	VisitSelect(Select)
	VisitRadio(Radio)
	VisitMultiSelect(MultiSelect)
	VisitCheckbox(Checkbox)
	VisitFile(File)
}

type Text struct{ Base }
type Textarea struct{ Base }
type Number struct{ Base }
type Email struct{ Base }
type Phone struct{ Base }
type Date struct{ Base }
type Checkbox struct{ Base }
type File struct{ Base }

// Select is a single choice from a dropdown.
type Select struct {
	Base
	Options []string
}

// Radio is a single choice from an exclusive button group.
type Radio struct {
	Base
	Options []string
}

// MultiSelect allows any subset of its options.
type MultiSelect struct {
	Base
	Options []string
}

func (Text) Type() models.FieldType        { return models.FieldTypeText }
func (Textarea) Type() models.FieldType    { return models.FieldTypeTextarea }
func (Number) Type() models.FieldType      { return models.FieldTypeNumber }
func (Email) Type() models.FieldType       { return models.FieldTypeEmail }
func (Phone) Type() models.FieldType       { return models.FieldTypePhone }
func (Date) Type() models.FieldType        { return models.FieldTypeDate }
func (Select) Type() models.FieldType      { return models.FieldTypeSelect }
func (Radio) Type() models.FieldType       { return models.FieldTypeRadio }
func (MultiSelect) Type() models.FieldType { return models.FieldTypeMultiSelect }
func (Checkbox) Type() models.FieldType    { return models.FieldTypeCheckbox }
func (File) Type() models.FieldType        { return models.FieldTypeFile }

func (k Text) Accept(v Visitor)        { v.VisitText(k) }
func (k Textarea) Accept(v Visitor)    { v.VisitTextarea(k) }
func (k Number) Accept(v Visitor)      { v.VisitNumber(k) }
func (k Email) Accept(v Visitor)       { v.VisitEmail(k) }
func (k Phone) Accept(v Visitor)       { v.VisitPhone(k) }
func (k Date) Accept(v Visitor)        { v.VisitDate(k) }
func (k Select) Accept(v Visitor)      { v.VisitSelect(k) }
func (k Radio) Accept(v Visitor)       { v.VisitRadio(k) }
func (k MultiSelect) Accept(v Visitor) { v.VisitMultiSelect(k) }
func (k Checkbox) Accept(v Visitor)    { v.VisitCheckbox(k) }
func (k File) Accept(v Visitor)        { v.VisitFile(k) }

func (Text) sealed()        {}
func (Textarea) sealed()    {}
func (Number) sealed()      {}
func (Email) sealed()       {}
func (Phone) sealed()       {}
func (Date) sealed()        {}
func (Select) sealed()      {}
func (Radio) sealed()       {}
func (MultiSelect) sealed() {}
func (Checkbox) sealed()    {}
func (File) sealed()        {}

// FromDefinition converts a stored row into its kind. Options are trimmed and
// blank entries dropped for choice kinds; they are ignored for the others.
func FromDefinition(def models.FieldDefinition) (Kind, error) {
	base := Base{
		Name:        def.Name,
		Label:       def.Label,
		Required:    def.Required,
		Placeholder: deref(def.Placeholder),
		HelpText:    deref(def.HelpText),
	}

	switch def.Type {
	case models.FieldTypeText:
		return Text{base}, nil
	case models.FieldTypeTextarea:
		return Textarea{base}, nil
	case models.FieldTypeNumber:
		return Number{base}, nil
	case models.FieldTypeEmail:
		return Email{base}, nil
	case models.FieldTypePhone:
		return Phone{base}, nil
	case models.FieldTypeDate:
		return Date{base}, nil
	case models.FieldTypeSelect:
		return Select{Base: base, Options: CleanOptions(def.Options)}, nil
	case models.FieldTypeRadio:
		return Radio{Base: base, Options: CleanOptions(def.Options)}, nil
	case models.FieldTypeMultiSelect:
		return MultiSelect{Base: base, Options: CleanOptions(def.Options)}, nil
	case models.FieldTypeCheckbox:
		return Checkbox{base}, nil
	case models.FieldTypeFile:
		return File{base}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
}

// FromDefinitions converts a whole schema, preserving order.
func FromDefinitions(defs []models.FieldDefinition) ([]Kind, error) {
	kinds := make([]Kind, 0, len(defs))
	for _, def := range defs {
		k, err := FromDefinition(def)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", def.Name, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// CleanOptions trims options and drops blank entries.
func CleanOptions(options []string) []string {
	cleaned := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	return cleaned
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
