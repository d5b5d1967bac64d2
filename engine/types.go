package engine

import (
	"context"

	"github.com/dmitrymomot/guardrail/rules"
)

// Section names one of the three independent namespaces a request's data is
// split into for validation.
type Section string

const (
	SectionBody   Section = "body"
	SectionParams Section = "params"
	SectionQuery  Section = "query"
)

// Request is the slice of an incoming request the engine validates: three
// optional untyped key-value sections. A nil section means the request did
// not supply it and its rules are skipped.
type Request struct {
	Body   map[string]any
	Params map[string]any
	Query  map[string]any
}

// CheckFunc is an inline validation predicate supplied directly in a schema
// instead of a registered rule. It must pair a failing result with an
// explicit error descriptor: failing with a nil descriptor is itself a
// contract violation reported under the "invalid-callback" rule name, since
// there is no registry entry to synthesize a default message from.
type CheckFunc func(ctx context.Context, data map[string]any, field string) (bool, *rules.FieldError)

// Schema is the caller-authored validation specification: per-section
// field→rule-spec mappings plus optional message and attribute overrides.
//
// A field's rule spec may be a rule string ("required|max:255"), a
// rules.Rule instance, a CheckFunc, or a slice mixing all three. Messages
// are keyed "field.rule_name" or "rule_name"; Attributes map field keys to
// the human label interpolated into messages.
//
// A Schema is read-only once validation starts serving requests.
type Schema struct {
	Body   map[string]any
	Params map[string]any
	Query  map[string]any

	Messages   map[string]string
	Attributes map[string]string
}

// Errors is the structured error map of a validation run:
// section → field → rule name → message. Only sections with at least one
// entry are populated.
type Errors struct {
	Body   map[string]map[string]string `json:"body,omitempty"`
	Params map[string]map[string]string `json:"params,omitempty"`
	Query  map[string]map[string]string `json:"query,omitempty"`
}

// IsEmpty reports whether no section carries any error.
func (e Errors) IsEmpty() bool {
	return len(e.Body) == 0 && len(e.Params) == 0 && len(e.Query) == 0
}

// Section returns the error map of one section, nil when clean.
func (e Errors) Section(s Section) map[string]map[string]string {
	switch s {
	case SectionBody:
		return e.Body
	case SectionParams:
		return e.Params
	case SectionQuery:
		return e.Query
	}
	return nil
}

// Validated echoes back the input values of fields that passed every rule
// applied to them, per section.
type Validated struct {
	Body   map[string]any `json:"body,omitempty"`
	Params map[string]any `json:"params,omitempty"`
	Query  map[string]any `json:"query,omitempty"`
}

// Section returns the validated value map of one section, nil when empty.
func (v Validated) Section(s Section) map[string]any {
	switch s {
	case SectionBody:
		return v.Body
	case SectionParams:
		return v.Params
	case SectionQuery:
		return v.Query
	}
	return nil
}

// Result is the consolidated outcome of one validation run. For every field
// the two maps are mutually exclusive: a field with errors never appears in
// Validated.
type Result struct {
	Errors    Errors    `json:"errors"`
	Validated Validated `json:"validated"`
}
