package formfield

import (
	"strconv"
	"strings"

	"jobform-api/internal/models"

	"github.com/google/uuid"
)

// fallbackName is used when a label has no usable characters.
const fallbackName = "field"

// Slugify derives a machine key from a label: lower case ASCII letters and
// digits, everything else collapsed into single underscores.
func Slugify(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}

// UniqueName returns base, or base with the smallest numeric suffix starting
// at _2 that is not in taken. The returned name is added to taken.
func UniqueName(base string, taken map[string]struct{}) string {
	name := base
	for n := 2; ; n++ {
		if _, ok := taken[name]; !ok {
			break
		}
		name = base + "_" + strconv.Itoa(n)
	}
	taken[name] = struct{}{}
	return name
}

// AssignNames fills in blank names from the slugified label, suffixing on
// collision with names already present in the list.
func AssignNames(defs []models.FieldDefinition) {
	taken := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if d.Name != "" {
			taken[d.Name] = struct{}{}
		}
	}
	for i := range defs {
		if strings.TrimSpace(defs[i].Name) == "" {
			defs[i].Name = UniqueName(Slugify(defs[i].Label), taken)
		}
	}
}

// Redense rewrites Order to match list position.
func Redense(defs []models.FieldDefinition) {
	for i := range defs {
		defs[i].Order = i
	}
}

// Normalize prepares a schema for persistence: names assigned, order
// re-densed, labels trimmed, options cleaned for choice types and cleared for
// the rest. The input is not modified.
func Normalize(jobID uuid.UUID, defs []models.FieldDefinition) []models.FieldDefinition {
	out := make([]models.FieldDefinition, len(defs))
	copy(out, defs)
	for i := range out {
		out[i].JobPostingID = jobID
		out[i].Label = strings.TrimSpace(out[i].Label)
		out[i].Name = strings.TrimSpace(out[i].Name)
		if out[i].Type.HasOptions() {
			out[i].Options = CleanOptions(out[i].Options)
		} else {
			out[i].Options = nil
		}
	}
	AssignNames(out)
	Redense(out)
	return out
}
