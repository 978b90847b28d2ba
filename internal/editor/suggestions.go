package editor

import (
	"strings"

	"jobform-api/internal/formfield"
	"jobform-api/internal/models"
)

// MergeSuggestions appends suggested fields after the existing ones. Names are
// slugified from the suggested label and suffixed so they are unique against
// the existing fields and the rest of the batch. Suggestions without a label
// are dropped; unknown types fall back to text. The input is not modified.
func MergeSuggestions(d Draft, suggestions []models.FieldSuggestion) (Draft, int) {
	out := d.Clone()
	taken := out.names(-1)
	added := 0

	for _, s := range suggestions {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			continue
		}
		ft := s.Type
		if !ft.Valid() {
			ft = models.FieldTypeText
		}
		def := models.FieldDefinition{
			JobPostingID: out.JobPostingID,
			Name:         formfield.UniqueName(formfield.Slugify(label), taken),
			Label:        label,
			Type:         ft,
			Required:     s.Required,
			Order:        len(out.Fields),
			Placeholder:  optional(s.Placeholder),
			HelpText:     optional(s.HelpText),
		}
		if ft.HasOptions() {
			def.Options = formfield.CleanOptions(s.Options)
		}
		out.Fields = append(out.Fields, DraftField{FieldDefinition: def, AutoName: true})
		added++
	}
	return out, added
}
