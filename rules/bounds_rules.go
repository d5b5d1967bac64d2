package rules

import (
	"context"
	"math"
	"unicode/utf8"
)

const (
	msgBadBound = "The value expected for the validation must be a number. The value provided is: {value}"
	msgBadType  = "The field under validation ({field}) must be of type: Array, String or Number"
)

// sizeOf measures a value the way min/max/between compare it: rune count for
// strings, element count for slices, the value itself for numbers.
func sizeOf(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		return float64(utf8.RuneCountInString(s)), true
	}
	if n, ok := sliceLen(v); ok {
		return float64(n), true
	}
	return 0, false
}

// Min passes when the field's length (strings, arrays) or value (numbers) is
// greater than or equal to the rule argument.
type Min struct{}

func (r *Min) Name() string { return deriveName(r) }

func (r *Min) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	bound, missing, invalid := parseBound(arg)
	if missing || invalid {
		return false
	}
	size, ok := sizeOf(data[field])
	if !ok {
		return false
	}
	return size >= bound
}

func (r *Min) Message(data map[string]any, field, label, custom, arg string) FieldError {
	tpl := "The {field} must have a min length of {value}"
	if _, missing, invalid := parseBound(arg); missing || invalid {
		tpl = msgBadBound
	} else if _, ok := sizeOf(data[field]); !ok {
		tpl = msgBadType
	}
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, tpl, map[string]string{"field": label, "value": arg}),
	}
}

// Max is the mirror of Min: the measured size must be less than or equal to
// the rule argument. An unusable argument and an unmeasurable field value
// produce distinct messages.
type Max struct{}

func (r *Max) Name() string { return deriveName(r) }

func (r *Max) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	bound, missing, invalid := parseBound(arg)
	if missing || invalid {
		return false
	}
	size, ok := sizeOf(data[field])
	if !ok {
		return false
	}
	return size <= bound
}

func (r *Max) Message(data map[string]any, field, label, custom, arg string) FieldError {
	tpl := "The {field} must have a max length of {value}"
	if _, ok := sizeOf(data[field]); !ok {
		tpl = msgBadType
	} else if _, missing, invalid := parseBound(arg); missing || invalid {
		tpl = msgBadBound
	}
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, tpl, map[string]string{"field": label, "value": arg}),
	}
}

// Between combines Min and Max. Bounds come either from a "min,max" rule
// argument or from fluent pre-configuration; the argument wins when both are
// supplied. Instances configured fluently are one-shot: do not share them
// across concurrent requests.
type Between struct {
	minValue float64
	maxValue float64
	hasMin   bool
	hasMax   bool
}

func NewBetween() *Between {
	return &Between{minValue: math.Inf(-1), maxValue: math.Inf(1)}
}

func (r *Between) Min(v float64) *Between {
	r.minValue = v
	r.hasMin = true
	return r
}

func (r *Between) Max(v float64) *Between {
	r.maxValue = v
	r.hasMax = true
	return r
}

func (r *Between) Name() string { return deriveName(r) }

// bounds resolves the effective min/max pair. ok is false when either bound
// is missing or unparseable; swapped is true when min exceeds max.
func (r *Between) bounds(arg string) (minB, maxB float64, ok, swapped bool) {
	if arg != "" {
		parts := splitArgs(arg)
		var maxRaw string
		minRaw := parts[0]
		if len(parts) > 1 {
			maxRaw = parts[1]
		}
		minV, minMissing, minInvalid := parseBound(minRaw)
		maxV, maxMissing, maxInvalid := parseBound(maxRaw)
		if minMissing || minInvalid || maxMissing || maxInvalid {
			return 0, 0, false, false
		}
		return minV, maxV, true, minV > maxV
	}
	if !r.hasMin || !r.hasMax {
		return 0, 0, false, false
	}
	return r.minValue, r.maxValue, true, r.minValue > r.maxValue
}

func (r *Between) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	minB, maxB, ok, swapped := r.bounds(arg)
	if !ok || swapped {
		return false
	}
	size, measurable := sizeOf(data[field])
	if !measurable {
		return false
	}
	return size >= minB && size <= maxB
}

func (r *Between) Message(data map[string]any, field, label, custom, arg string) FieldError {
	minB, maxB, ok, swapped := r.bounds(arg)

	tpl := "The {field} field must be between {min} and {max}"
	vars := map[string]string{"field": label}

	switch {
	case swapped:
		tpl = "The min value must be less or equal than the max value."
	case !ok:
		tpl = "The min and max values must both be defined."
	default:
		if _, measurable := sizeOf(data[field]); !measurable {
			tpl = msgBadType
		}
		vars["min"] = formatNumber(minB)
		vars["max"] = formatNumber(maxB)
	}

	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, tpl, vars),
	}
}
