package suggest

// responseSchema is the JSON Schema a model response must satisfy before it is
// mapped to suggestions. Optional properties accept null.
const responseSchema = `{
  "type": "object",
  "required": ["fields"],
  "properties": {
    "fields": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "type"],
        "properties": {
          "label": {"type": "string"},
          "type": {"type": "string"},
          "required": {"type": ["boolean", "null"]},
          "placeholder": {"type": ["string", "null"]},
          "help_text": {"type": ["string", "null"]},
          "options": {"type": ["array", "null"], "items": {"type": "string"}}
        }
      }
    }
  }
}`
