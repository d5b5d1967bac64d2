package rules

import (
	"context"
	"strings"
)

// Accepted passes for true, 1, "1", "yes", "on" and "true"; string matching
// is case-insensitive. Anything else, absent values included, fails.
type Accepted struct{}

func (r *Accepted) Name() string { return deriveName(r) }

func (r *Accepted) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	switch t := data[field].(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(t) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	}
	if f, ok := toFloat(data[field]); ok {
		return f == 1
	}
	return false
}

func (r *Accepted) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be accepted", map[string]string{"field": label}),
	}
}

// Declined is the mirror of Accepted: false, 0, "0", "no", "off" and "false"
// pass, absent or null values fail.
type Declined struct{}

func (r *Declined) Name() string { return deriveName(r) }

func (r *Declined) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	v, ok := data[field]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return !t
	case string:
		switch strings.ToLower(t) {
		case "false", "0", "no", "off":
			return true
		}
		return false
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}

func (r *Declined) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be declined", map[string]string{"field": label}),
	}
}

// CastBoolean passes for the values true, false, 1, 0, "1" and "0" — inputs
// that cast unambiguously to a boolean. It registers under the historical
// rule-string name "boolean".
type CastBoolean struct{}

func (r *CastBoolean) Name() string { return "boolean" }

func (r *CastBoolean) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	switch t := data[field].(type) {
	case bool:
		return true
	case string:
		return t == "1" || t == "0"
	}
	if f, ok := toFloat(data[field]); ok {
		return f == 1 || f == 0
	}
	return false
}

func (r *CastBoolean) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be able to be cast as a boolean", map[string]string{"field": label}),
	}
}
