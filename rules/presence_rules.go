package rules

import (
	"context"
	"strings"
)

// Required passes when the field is present and carries a non-empty trimmed
// string, a non-empty slice, or a non-empty map. Scalar values such as
// numbers and booleans do not satisfy required.
type Required struct{}

func (r *Required) Name() string { return deriveName(r) }

func (r *Required) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	v, ok := data[field]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	}
	if n, ok := lengthOf(v); ok {
		return n > 0
	}
	return false
}

func (r *Required) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field is required", map[string]string{"field": label}),
	}
}

// Present passes when the field key exists in the data bag, whatever the
// value, explicit null included.
type Present struct{}

func (r *Present) Name() string { return deriveName(r) }

func (r *Present) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	_, ok := data[field]
	return ok
}

func (r *Present) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be present in the input data", map[string]string{"field": label}),
	}
}

// Nullable requires the field key to exist; the value itself may be null or
// anything else. The engine treats it as a marker: when the value is null,
// the remaining rules in the field's chain are skipped.
type Nullable struct{}

func (r *Nullable) Name() string { return deriveName(r) }

func (r *Nullable) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	_, ok := data[field]
	return ok
}

func (r *Nullable) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field may be null", map[string]string{"field": label}),
	}
}

// Prohibited passes when the field is absent, null, or an empty string or
// slice. A present non-empty value of any other type fails.
type Prohibited struct{}

func (r *Prohibited) Name() string { return deriveName(r) }

func (r *Prohibited) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	v, ok := data[field]
	if !ok || v == nil {
		return true
	}
	// Only strings and arrays count as emptiable; any other present value fails.
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	if n, ok := sliceLen(v); ok {
		return n == 0
	}
	return false
}

func (r *Prohibited) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be missing or empty", map[string]string{"field": label}),
	}
}
