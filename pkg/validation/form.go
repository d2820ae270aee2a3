package validation

import (
	"github.com/goliatone/go-contactdesk/pkg/model"
)

// FormResult aggregates per-field results for a whole form submission.
type FormResult struct {
	Valid  bool              `json:"valid"`
	Order  []string          `json:"order"`
	Fields map[string]Result `json:"fields"`
	// FirstInvalid names the field that should receive focus.
	FirstInvalid string `json:"firstInvalid,omitempty"`
}

// Messages returns the non-empty field messages keyed by field name.
func (r FormResult) Messages() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for name, result := range r.Fields {
		if result.Message != "" {
			out[name] = result.Message
		}
	}
	return out
}

// ValidateForm validates every field of form against values. All fields are
// evaluated so every message is available to the caller, not just the first.
func (v *Validator) ValidateForm(form model.FormModel, values map[string]string) FormResult {
	result := FormResult{
		Valid:  true,
		Order:  form.Names(),
		Fields: make(map[string]Result, len(form.Fields)),
	}
	for _, field := range form.Fields {
		fieldResult := v.Validate(field, values[field.Name])
		result.Fields[field.Name] = fieldResult
		if fieldResult.Valid {
			continue
		}
		if result.Valid {
			result.FirstInvalid = field.Name
		}
		result.Valid = false
	}
	return result
}
