package rules

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// conditional carries the shared state and helpers of rules that compare a
// target field against another field's value (present_if, prohibited_if).
// The pair to check comes either from a "field,value" rule argument or from
// fluent pre-configuration; the argument wins when both are supplied.
// Fluently configured instances are one-shot and must not be shared across
// concurrent requests.
type conditional struct {
	fieldToCheck string
	valueToCheck any
}

// fieldAndValue resolves the field/value pair for a given rule argument.
func (c *conditional) fieldAndValue(arg string) (string, any) {
	if arg != "" {
		parts := splitArgs(arg)
		var value any
		if len(parts) > 1 && parts[1] != "" {
			value = parts[1]
		}
		return parts[0], value
	}
	return c.fieldToCheck, c.valueToCheck
}

// coerce normalizes a value for conditional comparison. Rule arguments always
// arrive as strings while the compared field value may be any JSON-compatible
// type, so objects reduce to their canonical JSON form, numbers to their
// decimal string form and booleans to "true"/"false".
func coerce(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := toFloat(v); ok {
		return formatNumber(f)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

// compareValues reports type-coercing equality of a field value and the
// configured comparison value.
func (c *conditional) compareValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return coerce(a) == coerce(b)
}

// missingOrNull reports whether the field is absent from the data bag or
// explicitly null.
func (c *conditional) missingOrNull(data map[string]any, field string) bool {
	v, ok := data[field]
	return !ok || v == nil
}

// PresentIf requires the target field to be present and non-null whenever the
// named field compares equal to the configured value; otherwise it always
// passes.
type PresentIf struct {
	conditional
}

func NewPresentIf() *PresentIf { return &PresentIf{} }

func (r *PresentIf) Field(field string) *PresentIf {
	r.fieldToCheck = field
	return r
}

func (r *PresentIf) Value(value any) *PresentIf {
	r.valueToCheck = value
	return r
}

func (r *PresentIf) Name() string { return deriveName(r) }

func (r *PresentIf) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	check, want := r.fieldAndValue(arg)
	if check == "" {
		return true
	}
	have, ok := data[check]
	if !ok || !r.compareValues(have, want) {
		return true
	}
	return !r.missingOrNull(data, field)
}

func (r *PresentIf) Message(_ map[string]any, _, label, custom, arg string) FieldError {
	check, want := r.fieldAndValue(arg)
	return FieldError{
		Name: r.Name(),
		Message: renderMessage(custom,
			"The {field} field must be present if the field {fieldToCheck} has a value of {valueToCheck}",
			map[string]string{"field": label, "fieldToCheck": check, "valueToCheck": coerce(want)}),
	}
}

// ProhibitedIf requires the target field to be absent, null or empty whenever
// the named field compares equal to the configured value; otherwise it always
// passes.
type ProhibitedIf struct {
	conditional
}

func NewProhibitedIf() *ProhibitedIf { return &ProhibitedIf{} }

func (r *ProhibitedIf) Field(field string) *ProhibitedIf {
	r.fieldToCheck = field
	return r
}

func (r *ProhibitedIf) Value(value any) *ProhibitedIf {
	r.valueToCheck = value
	return r
}

func (r *ProhibitedIf) Name() string { return deriveName(r) }

func (r *ProhibitedIf) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	check, want := r.fieldAndValue(arg)
	if check == "" {
		return true
	}
	have, ok := data[check]
	if !ok || !r.compareValues(have, want) {
		return true
	}
	if r.missingOrNull(data, field) {
		return true
	}
	switch t := data[field].(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	if n, ok := sliceLen(data[field]); ok {
		return n == 0
	}
	return false
}

func (r *ProhibitedIf) Message(_ map[string]any, _, label, custom, arg string) FieldError {
	check, want := r.fieldAndValue(arg)
	return FieldError{
		Name: r.Name(),
		Message: renderMessage(custom,
			"The {field} field must be missing or empty if the field {fieldToCheck} has a value of {valueToCheck}",
			map[string]string{"field": label, "fieldToCheck": check, "valueToCheck": coerce(want)}),
	}
}
