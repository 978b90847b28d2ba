// Package renderer turns a persisted form schema into input widgets and
// validates a candidate's answers into an answer bundle. It never writes to
// the schema store.
package renderer

import (
	"jobform-api/internal/formfield"
	"jobform-api/internal/models"
)

// Widget names understood by the front end.
const (
	WidgetInput         = "input"
	WidgetTextarea      = "textarea"
	WidgetDatePicker    = "date_picker"
	WidgetDropdown      = "dropdown"
	WidgetRadioGroup    = "radio_group"
	WidgetCheckboxGroup = "checkbox_group"
	WidgetToggle        = "checkbox"
	WidgetFilePicker    = "file_picker"
)

// Widget describes how one field is presented.
type Widget struct {
	Widget      string           `json:"widget"`
	InputType   string           `json:"input_type,omitempty"`
	Type        models.FieldType `json:"type"`
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty"`
	Multiple    bool             `json:"multiple,omitempty"`
	Pattern     string           `json:"pattern,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelpText    string           `json:"help_text,omitempty"`
	ToggleText  string           `json:"toggle_text,omitempty"`
}

// Render returns one widget per field, in schema order.
func Render(defs []models.FieldDefinition) ([]Widget, error) {
	kinds, err := formfield.FromDefinitions(defs)
	if err != nil {
		return nil, err
	}
	r := &widgetBuilder{widgets: make([]Widget, 0, len(kinds))}
	for _, k := range kinds {
		k.Accept(r)
	}
	return r.widgets, nil
}

type widgetBuilder struct {
	widgets []Widget
}

func (r *widgetBuilder) add(k formfield.Kind, widget, inputType string, mutate func(w *Widget)) {
	b := k.Common()
	w := Widget{
		Widget:      widget,
		InputType:   inputType,
		Type:        k.Type(),
		Name:        b.Name,
		Label:       b.Label,
		Required:    b.Required,
		Placeholder: b.Placeholder,
		HelpText:    b.HelpText,
	}
	if mutate != nil {
		mutate(&w)
	}
	r.widgets = append(r.widgets, w)
}

func (r *widgetBuilder) VisitText(k formfield.Text) { r.add(k, WidgetInput, "text", nil) }

func (r *widgetBuilder) VisitTextarea(k formfield.Textarea) { r.add(k, WidgetTextarea, "", nil) }

func (r *widgetBuilder) VisitNumber(k formfield.Number) { r.add(k, WidgetInput, "number", nil) }

func (r *widgetBuilder) VisitEmail(k formfield.Email) {
	r.add(k, WidgetInput, "email", func(w *Widget) { w.Pattern = EmailPattern })
}

func (r *widgetBuilder) VisitPhone(k formfield.Phone) { r.add(k, WidgetInput, "tel", nil) }

func (r *widgetBuilder) VisitDate(k formfield.Date) { r.add(k, WidgetDatePicker, "date", nil) }

func (r *widgetBuilder) VisitSelect(k formfield.Select) {
	r.add(k, WidgetDropdown, "", func(w *Widget) { w.Options = k.Options })
}

func (r *widgetBuilder) VisitRadio(k formfield.Radio) {
	r.add(k, WidgetRadioGroup, "", func(w *Widget) { w.Options = k.Options })
}

func (r *widgetBuilder) VisitMultiSelect(k formfield.MultiSelect) {
	r.add(k, WidgetCheckboxGroup, "", func(w *Widget) {
		w.Options = k.Options
		w.Multiple = true
	})
}

// The checkbox label doubles as the toggle text.
func (r *widgetBuilder) VisitCheckbox(k formfield.Checkbox) {
	r.add(k, WidgetToggle, "checkbox", func(w *Widget) { w.ToggleText = k.Label })
}

func (r *widgetBuilder) VisitFile(k formfield.File) { r.add(k, WidgetFilePicker, "file", nil) }
