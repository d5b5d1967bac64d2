package rules

import "context"

// IsArray passes when the value is an array, the empty array included.
type IsArray struct{}

func (r *IsArray) Name() string { return deriveName(r) }

func (r *IsArray) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	_, ok := sliceLen(data[field])
	return ok
}

func (r *IsArray) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be an array", map[string]string{"field": label}),
	}
}
