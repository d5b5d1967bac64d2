package guardrail

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/guardrail/engine"
)

// ValidationError is the structured error raised when a request fails
// validation: an HTTP status (422 by default) carrying the sectioned
// field→rule→message map.
type ValidationError struct {
	Status int           `json:"status"`
	Errors engine.Errors `json:"errors"`
}

// NewValidationError creates a ValidationError with the default 422 status.
func NewValidationError(errs engine.Errors) *ValidationError {
	return &ValidationError{Status: http.StatusUnprocessableEntity, Errors: errs}
}

// Error implements the error interface with a compact per-field summary.
func (e *ValidationError) Error() string {
	var parts []string
	for _, section := range []engine.Section{engine.SectionBody, engine.SectionParams, engine.SectionQuery} {
		for field, ruleErrs := range e.Errors.Section(section) {
			for _, msg := range ruleErrs {
				parts = append(parts, fmt.Sprintf("%s.%s: %s", section, field, msg))
				break
			}
		}
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
