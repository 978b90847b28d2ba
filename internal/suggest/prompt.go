package suggest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"jobform-api/internal/models"
)

const fieldPrompt = `
You are helping a recruiter design the application form for a job posting.
Suggest the extra questions a candidate should answer when applying.

### INSTRUCTIONS:
1. Suggest between 3 and 8 questions that are specific to this job.
2. Do not ask for name, email or CV; the platform already collects them.
3. Use only these field types: %s.
4. select, radio and multiselect fields must include an "options" array.
5. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "fields": [
        {
            "label": "Question shown to the candidate",
            "type": "one of the field types",
            "required": true,
            "placeholder": "optional example answer",
            "help_text": "optional hint",
            "options": ["only", "for", "choice", "types"]
        }
    ]
}

### JOB TITLE:
%s

### DESCRIPTION:
%s

### REQUIREMENTS:
%s
`

const maxSectionLen = 8000

// BuildPrompt renders the prompt for a job posting.
func BuildPrompt(job models.JobContext) string {
	types := make([]string, 0, len(models.FieldTypes))
	for _, t := range models.FieldTypes {
		types = append(types, string(t))
	}
	return fmt.Sprintf(fieldPrompt,
		strings.Join(types, ", "),
		section(job.Title),
		section(job.Description),
		section(job.Requirements),
	)
}

func section(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(not provided)"
	}
	if len(s) > maxSectionLen {
		// cut on a rune boundary so the prompt stays valid UTF-8
		n := maxSectionLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return s
}
