package editor

import (
	"fmt"
	"strconv"
	"strings"

	"jobform-api/internal/formfield"
	"jobform-api/internal/models"

	"github.com/google/uuid"
)

// DraftField is a field under edit. AutoName is true while the name is still
// derived from the label.
type DraftField struct {
	models.FieldDefinition
	AutoName bool `json:"auto_name"`
}

// Draft is the local, unsaved copy of a job posting's schema.
type Draft struct {
	JobPostingID uuid.UUID    `json:"job_posting_id"`
	Fields       []DraftField `json:"fields"`
	NextSeq      int          `json:"next_seq"`
}

// FieldPatch carries the attributes to change; nil means unchanged.
type FieldPatch struct {
	Name        *string           `json:"name,omitempty"`
	Label       *string           `json:"label,omitempty"`
	Type        *models.FieldType `json:"type,omitempty"`
	Required    *bool             `json:"required,omitempty"`
	Options     *[]string         `json:"options,omitempty"`
	Placeholder *string           `json:"placeholder,omitempty"`
	HelpText    *string           `json:"help_text,omitempty"`
}

// NewDraft starts a draft from a persisted schema.
func NewDraft(jobID uuid.UUID, defs []models.FieldDefinition) Draft {
	d := Draft{JobPostingID: jobID, Fields: make([]DraftField, 0, len(defs))}
	for _, def := range defs {
		d.Fields = append(d.Fields, DraftField{FieldDefinition: cloneDefinition(def)})
	}
	redense(d.Fields)
	return d
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	out := d
	out.Fields = make([]DraftField, len(d.Fields))
	for i, f := range d.Fields {
		out.Fields[i] = DraftField{FieldDefinition: cloneDefinition(f.FieldDefinition), AutoName: f.AutoName}
	}
	return out
}

// AddField appends a blank text field with a generated placeholder name and
// returns its index.
func (d *Draft) AddField() int {
	taken := d.names(-1)
	var name string
	for {
		d.NextSeq++
		name = "field_" + strconv.Itoa(d.NextSeq)
		if _, ok := taken[name]; !ok {
			break
		}
	}
	d.Fields = append(d.Fields, DraftField{
		FieldDefinition: models.FieldDefinition{
			JobPostingID: d.JobPostingID,
			Name:         name,
			Type:         models.FieldTypeText,
			Order:        len(d.Fields),
		},
		AutoName: true,
	})
	return len(d.Fields) - 1
}

// RemoveField drops the field at index and re-denses the order.
func (d *Draft) RemoveField(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Fields = append(d.Fields[:index], d.Fields[index+1:]...)
	redense(d.Fields)
	return nil
}

// Move relocates the field at from to position to.
func (d *Draft) Move(from, to int) error {
	moved, err := Move(d.Fields, from, to)
	if err != nil {
		return err
	}
	d.Fields = moved
	return nil
}

// Reorder applies a full permutation: position i receives the field that was
// at perm[i].
func (d *Draft) Reorder(perm []int) error {
	if len(perm) != len(d.Fields) {
		return fmt.Errorf("%w: got %d positions for %d fields", ErrInvalidPermutation, len(perm), len(d.Fields))
	}
	seen := make([]bool, len(perm))
	next := make([]DraftField, len(perm))
	for pos, from := range perm {
		if from < 0 || from >= len(perm) || seen[from] {
			return fmt.Errorf("%w: position %d", ErrInvalidPermutation, pos)
		}
		seen[from] = true
		next[pos] = d.Fields[from]
	}
	redense(next)
	d.Fields = next
	return nil
}

// UpdateField merges patch into the field at index. Options survive a type
// change; they are ignored for non-choice types until saved.
func (d *Draft) UpdateField(index int, patch FieldPatch) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldType, *patch.Type)
	}

	f := &d.Fields[index]
	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Type != nil {
		f.Type = *patch.Type
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Options != nil {
		f.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Placeholder != nil {
		f.Placeholder = optional(*patch.Placeholder)
	}
	if patch.HelpText != nil {
		f.HelpText = optional(*patch.HelpText)
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			f.Name = name
			f.AutoName = false
		} else {
			f.AutoName = true
		}
	}
	if f.AutoName && (patch.Label != nil || patch.Name != nil) {
		d.rederiveName(index)
	}
	return nil
}

// AddOption appends an empty option to the field at index.
func (d *Draft) AddOption(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Fields[index].Options = append(d.Fields[index].Options, "")
	return nil
}

// UpdateOption sets the option text at optionIndex.
func (d *Draft) UpdateOption(index, optionIndex int, value string) error {
	if err := d.checkOption(index, optionIndex); err != nil {
		return err
	}
	d.Fields[index].Options[optionIndex] = value
	return nil
}

// RemoveOption drops the option at optionIndex.
func (d *Draft) RemoveOption(index, optionIndex int) error {
	if err := d.checkOption(index, optionIndex); err != nil {
		return err
	}
	opts := d.Fields[index].Options
	d.Fields[index].Options = append(opts[:optionIndex:optionIndex], opts[optionIndex+1:]...)
	return nil
}

// Finalize returns the definitions to persist with order re-densed. Auto
// names the draft shows are kept; only a blank auto name, or one now taken by
// a manual name or an earlier field, is derived again from the label. The
// draft is not modified.
func (d Draft) Finalize() []models.FieldDefinition {
	taken := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if !f.AutoName && f.Name != "" {
			taken[f.Name] = struct{}{}
		}
	}
	defs := make([]models.FieldDefinition, len(d.Fields))
	for i, f := range d.Fields {
		def := cloneDefinition(f.FieldDefinition)
		def.JobPostingID = d.JobPostingID
		if f.AutoName || def.Name == "" {
			if _, dup := taken[def.Name]; def.Name != "" && !dup {
				taken[def.Name] = struct{}{}
			} else {
				def.Name = formfield.UniqueName(formfield.Slugify(def.Label), taken)
			}
		}
		def.Order = i
		defs[i] = def
	}
	return defs
}

// Move is the pure form of Draft.Move: it returns a new list with the field
// at from placed at to and every order re-densed.
func Move(fields []DraftField, from, to int) ([]DraftField, error) {
	if from < 0 || from >= len(fields) || to < 0 || to >= len(fields) {
		return nil, fmt.Errorf("%w: move %d -> %d with %d fields", ErrIndexOutOfRange, from, to, len(fields))
	}
	out := make([]DraftField, 0, len(fields))
	moved := fields[from]
	for i, f := range fields {
		if i == from {
			continue
		}
		out = append(out, f)
	}
	out = append(out[:to], append([]DraftField{moved}, out[to:]...)...)
	redense(out)
	return out, nil
}

func (d *Draft) rederiveName(index int) {
	label := strings.TrimSpace(d.Fields[index].Label)
	if label == "" {
		return
	}
	d.Fields[index].Name = formfield.UniqueName(formfield.Slugify(label), d.names(index))
}

// names returns the names in use, skipping index.
func (d *Draft) names(skip int) map[string]struct{} {
	taken := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if i != skip && f.Name != "" {
			taken[f.Name] = struct{}{}
		}
	}
	return taken
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.Fields) {
		return fmt.Errorf("%w: field %d of %d", ErrIndexOutOfRange, index, len(d.Fields))
	}
	return nil
}

func (d *Draft) checkOption(index, optionIndex int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(d.Fields[index].Options) {
		return fmt.Errorf("%w: option %d of field %d", ErrIndexOutOfRange, optionIndex, index)
	}
	return nil
}

func redense(fields []DraftField) {
	for i := range fields {
		fields[i].Order = i
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func cloneDefinition(def models.FieldDefinition) models.FieldDefinition {
	out := def
	if def.Options != nil {
		out.Options = append([]string(nil), def.Options...)
	}
	if def.Placeholder != nil {
		p := *def.Placeholder
		out.Placeholder = &p
	}
	if def.HelpText != nil {
		h := *def.HelpText
		out.HelpText = &h
	}
	return out
}
