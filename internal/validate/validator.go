package validate

import (
	"strings"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// placeholderValues are strings that signal "field intentionally left
// unanswered" rather than a real value. Matching is done on the trimmed,
// lower-cased form.
var placeholderValues = map[string]struct{}{
	"not":          {},
	"not provided": {},
	"n/a":          {},
	"na":           {},
	"unknown":      {},
	"incomplete":   {},
	"insufficient": {},
	"missing":      {},
}

// Validator identifies missing mandatory fields
type Validator struct{}

// NewValidator creates a new field validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the mandatory fields that are absent or hold a
// placeholder value, in mandatory-field declaration order. It is pure and
// never fails.
func (v *Validator) Validate(fields model.ExtractedFields) []model.FieldName {
	var missing []model.FieldName

	for _, name := range model.MandatoryFields {
		value, ok := fields.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		folded := strings.ToLower(strings.TrimSpace(value))
		if folded == "" {
			missing = append(missing, name)
			continue
		}
		if _, placeholder := placeholderValues[folded]; placeholder {
			missing = append(missing, name)
		}
	}

	return missing
}
