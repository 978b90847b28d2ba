package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobform-api/internal/formfield"
	"jobform-api/internal/models"
)

// EmailPattern is the shape an email answer must have.
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var emailRe = regexp.MustCompile(EmailPattern)

const dateLayout = "2006-01-02"

var ErrInvalidSubmission = errors.New("application form has errors")

// Field error codes.
const (
	CodeRequired      = "required"
	CodeInvalidEmail  = "invalid_email"
	CodeInvalidNumber = "invalid_number"
	CodeInvalidDate   = "invalid_date"
	CodeInvalidOption = "invalid_option"
	CodeInvalidValue  = "invalid_value"
)

// FieldError is a problem with one answer.
type FieldError struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmissionError carries every failing field of one submission attempt.
type SubmissionError struct {
	Errors []FieldError
}

func (e *SubmissionError) Error() string {
	labels := e.Labels()
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission, strings.Join(labels, ", "))
}

func (e *SubmissionError) Unwrap() error { return ErrInvalidSubmission }

// Labels returns the labels of the failing fields in schema order.
func (e *SubmissionError) Labels() []string {
	labels := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		labels = append(labels, fe.Label)
	}
	return labels
}

// Bundle is an immutable set of answers keyed by field name.
type Bundle struct {
	values map[string]any
}

// Get returns the answer for name.
func (b Bundle) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b Bundle) Len() int { return len(b.values) }

// Map returns a copy of the answers.
func (b Bundle) Map() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

func (b Bundle) MarshalJSON() ([]byte, error) {
	if b.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.values)
}

// Submit validates answers against the schema and builds the bundle. Each
// field is checked on its own; unknown answer keys are ignored. On failure
// no bundle is produced and the error is a *SubmissionError.
func Submit(defs []models.FieldDefinition, answers map[string]any) (Bundle, error) {
	kinds, err := formfield.FromDefinitions(defs)
	if err != nil {
		return Bundle{}, err
	}
	c := &collector{answers: answers, values: make(map[string]any, len(kinds))}
	for _, k := range kinds {
		k.Accept(c)
	}
	if len(c.errs) > 0 {
		return Bundle{}, &SubmissionError{Errors: c.errs}
	}
	return Bundle{values: c.values}, nil
}

type collector struct {
	answers map[string]any
	values  map[string]any
	errs    []FieldError
}

func (c *collector) fail(b formfield.Base, code, msg string) {
	c.errs = append(c.errs, FieldError{Name: b.Name, Label: b.Label, Code: code, Message: msg})
}

// missing records a required failure when needed and reports whether the
// answer was absent.
func (c *collector) missing(b formfield.Base, present bool) bool {
	if present {
		return false
	}
	if b.Required {
		c.fail(b, CodeRequired, fmt.Sprintf("%s is required", b.Label))
	}
	return true
}

func (c *collector) text(k formfield.Kind) (string, bool) {
	b := k.Common()
	s, present, ok := stringAnswer(c.answers[b.Name])
	if !ok {
		c.fail(b, CodeInvalidValue, fmt.Sprintf("%s must be text", b.Label))
		return "", false
	}
	if c.missing(b, present) {
		return "", false
	}
	return s, true
}

func (c *collector) VisitText(k formfield.Text) {
	if s, ok := c.text(k); ok {
		c.values[k.Name] = s
	}
}

func (c *collector) VisitTextarea(k formfield.Textarea) {
	if s, ok := c.text(k); ok {
		c.values[k.Name] = s
	}
}

func (c *collector) VisitPhone(k formfield.Phone) {
	if s, ok := c.text(k); ok {
		c.values[k.Name] = s
	}
}

func (c *collector) VisitEmail(k formfield.Email) {
	s, ok := c.text(k)
	if !ok {
		return
	}
	if !emailRe.MatchString(s) {
		c.fail(k.Base, CodeInvalidEmail, fmt.Sprintf("%s must be a valid email address", k.Label))
		return
	}
	c.values[k.Name] = s
}

func (c *collector) VisitNumber(k formfield.Number) {
	raw := c.answers[k.Name]
	if f, isFloat := raw.(float64); isFloat {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			c.fail(k.Base, CodeInvalidNumber, fmt.Sprintf("%s must be a number", k.Label))
			return
		}
		c.values[k.Name] = f
		return
	}
	s, present, ok := stringAnswer(raw)
	if !ok {
		c.fail(k.Base, CodeInvalidNumber, fmt.Sprintf("%s must be a number", k.Label))
		return
	}
	if c.missing(k.Base, present) {
		return
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		c.fail(k.Base, CodeInvalidNumber, fmt.Sprintf("%s must be a number", k.Label))
		return
	}
	c.values[k.Name] = f
}

func (c *collector) VisitDate(k formfield.Date) {
	s, ok := c.text(k)
	if !ok {
		return
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			c.fail(k.Base, CodeInvalidDate, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", k.Label))
			return
		}
		d = ts
	}
	c.values[k.Name] = d.Format(dateLayout)
}

func (c *collector) single(k formfield.Kind, options []string) {
	s, ok := c.text(k)
	if !ok {
		return
	}
	b := k.Common()
	if !contains(options, s) {
		c.fail(b, CodeInvalidOption, fmt.Sprintf("%s must be one of the available options", b.Label))
		return
	}
	c.values[b.Name] = s
}

func (c *collector) VisitSelect(k formfield.Select) { c.single(k, k.Options) }

func (c *collector) VisitRadio(k formfield.Radio) { c.single(k, k.Options) }

func (c *collector) VisitMultiSelect(k formfield.MultiSelect) {
	picked, ok := listAnswer(c.answers[k.Name])
	if !ok {
		c.fail(k.Base, CodeInvalidValue, fmt.Sprintf("%s must be a list of options", k.Label))
		return
	}
	chosen := make(map[string]bool, len(picked))
	for _, p := range picked {
		if !contains(k.Options, p) {
			c.fail(k.Base, CodeInvalidOption, fmt.Sprintf("%q is not an option of %s", p, k.Label))
			return
		}
		chosen[p] = true
	}
	if c.missing(k.Base, len(chosen) > 0) {
		return
	}
	// option order, not selection order
	values := make([]string, 0, len(chosen))
	for _, o := range k.Options {
		if chosen[o] {
			values = append(values, o)
			delete(chosen, o)
		}
	}
	c.values[k.Name] = values
}

func (c *collector) VisitCheckbox(k formfield.Checkbox) {
	raw, given := c.answers[k.Name]
	checked, ok := boolAnswer(raw)
	if !ok {
		c.fail(k.Base, CodeInvalidValue, fmt.Sprintf("%s must be checked or unchecked", k.Label))
		return
	}
	if c.missing(k.Base, checked) {
		if given && raw != nil && !k.Required {
			c.values[k.Name] = false
		}
		return
	}
	c.values[k.Name] = true
}

func (c *collector) VisitFile(k formfield.File) {
	ref, ok := fileAnswer(c.answers[k.Name])
	if !ok {
		c.fail(k.Base, CodeInvalidValue, fmt.Sprintf("%s must reference an uploaded file", k.Label))
		return
	}
	if c.missing(k.Base, !ref.Empty()) {
		return
	}
	c.values[k.Name] = ref
}

// stringAnswer normalises a scalar answer. present is false for nil or blank
// values; ok is false when the value is not a scalar.
func stringAnswer(v any) (s string, present, ok bool) {
	switch t := v.(type) {
	case nil:
		return "", false, true
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	default:
		return "", false, false
	}
	return s, s != "", true
}

func listAnswer(v any) ([]string, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string:
		if t = strings.TrimSpace(t); t == "" {
			return nil, true
		}
		return []string{t}, true
	case []string:
		return trimAll(t), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return trimAll(out), true
	}
	return nil, false
}

func boolAnswer(v any) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, true
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "off", "0":
			return false, true
		case "true", "on", "1":
			return true, true
		}
	}
	return false, false
}

func fileAnswer(v any) (models.FileRef, bool) {
	switch t := v.(type) {
	case nil:
		return models.FileRef{}, true
	case string:
		return models.FileRef{ID: strings.TrimSpace(t)}, true
	case models.FileRef:
		return t, true
	case *models.FileRef:
		if t == nil {
			return models.FileRef{}, true
		}
		return *t, true
	case map[string]any:
		ref := models.FileRef{}
		for key, dst := range map[string]*string{"id": &ref.ID, "url": &ref.URL, "name": &ref.Name} {
			if raw, ok := t[key]; ok && raw != nil {
				s, ok := raw.(string)
				if !ok {
					return models.FileRef{}, false
				}
				*dst = strings.TrimSpace(s)
			}
		}
		return ref, true
	}
	return models.FileRef{}, false
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
