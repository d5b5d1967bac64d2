package guardrail

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/guardrail/engine"
	"github.com/dmitrymomot/guardrail/pkg/logger"
)

// Schema and CheckFunc are re-exported from engine for schema authoring
// without an extra import.
type (
	Schema    = engine.Schema
	CheckFunc = engine.CheckFunc
)

// New builds a standalone validator for the schema, usable outside the
// middleware pipeline (background jobs, message consumers).
func New(schema Schema, opts ...engine.Option) *engine.Validator {
	return engine.New(schema, opts...)
}

// ErrorFactory builds the structured error reported when validation fails.
// Custom factories can change the status or wrap the error map differently.
type ErrorFactory func(errs engine.Errors) *ValidationError

// Middleware wraps a Validator into the request/continuation contract: it
// validates the three request sections and either aborts with a structured
// error payload or attaches the result to the request context and continues.
type Middleware struct {
	validator    *engine.Validator
	newError     ErrorFactory
	throwOnError bool
	log          *slog.Logger
}

// Handler adapts the middleware to the standard net/http middleware shape,
// compatible with chi and every router that chains http.Handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := FromHTTP(r)
		if err != nil {
			m.fail(w, err)
			return
		}

		result, err := m.validator.Validate(r.Context(), req)
		if err != nil {
			// Schema-level programmer errors and panicking checks are not
			// validation failures; they surface as generic 500s.
			m.fail(w, err)
			return
		}

		if m.throwOnError && !result.Errors.IsEmpty() {
			m.abort(w, m.newError(result.Errors))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), result)))
	})
}

// abort writes the structured validation error.
func (m *Middleware) abort(w http.ResponseWriter, verr *ValidationError) {
	writeJSON(w, verr.Status, verr)
}

// fail writes the generic failure payload for unexpected pipeline errors.
func (m *Middleware) fail(w http.ResponseWriter, err error) {
	if m.log != nil {
		m.log.Error("validation pipeline failure", logger.Error(err))
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"status": http.StatusInternalServerError,
		"errors": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
