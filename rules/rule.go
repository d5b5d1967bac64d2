package rules

import (
	"context"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError is the outcome of a failed rule: the rule's reporting name plus
// the rendered, human-readable message.
type FieldError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Rule is a named, reusable validation predicate together with its
// message-building logic.
//
// Validate reports normal failure by returning false; it must not panic for
// bad input. The arg parameter carries the raw text after ":" in rule-string
// shorthand ("max:255" yields "255") and is parsed by the rule itself.
//
// Message receives the data bag in addition to the field key because rules
// with argument- or type-dependent message variants (min, max, between)
// recompute the applicable template on demand. Rule instances are shared
// across concurrent requests, so they never cache state between Validate and
// Message. The label is the display name used in templates (a custom
// attribute when configured, the field key otherwise); custom, when
// non-empty, overrides the rule's default template.
type Rule interface {
	Name() string
	Validate(ctx context.Context, data map[string]any, field, arg string) bool
	Message(data map[string]any, field, label, custom, arg string) FieldError
}

var placeholderRe = regexp.MustCompile(`\{\w+\}`)

// renderMessage substitutes {placeholder} tokens in tpl from vars. When tpl is
// empty the fallback template is used instead. Unknown placeholders render as
// empty strings.
func renderMessage(tpl, fallback string, vars map[string]string) string {
	if tpl == "" {
		tpl = fallback
	}
	return placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		return vars[strings.Trim(m, "{}")]
	})
}

// deriveName converts a rule's concrete type name to its snake_case
// identifier: the leading uppercase run is lowered unprefixed, every
// subsequent run is prefixed with "_". IsArray becomes is_array, PresentIf
// becomes present_if, UUID becomes uuid.
func deriveName(r any) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			prev, _ := utf8.DecodeLastRuneInString(name[:i])
			if i > 0 && !unicode.IsUpper(prev) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitArgs splits a comma-separated rule argument into trimmed tokens.
// Tokens that are empty after trimming stay empty and are treated as missing
// by the consuming rule, never as the empty string value.
func splitArgs(arg string) []string {
	parts := strings.Split(arg, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// lengthOf returns the rune count of strings and the element count of slices,
// arrays and maps. The second return reports whether the value has a length
// at all.
func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// sliceLen is lengthOf restricted to slices and arrays.
func sliceLen(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

// toFloat converts numeric values (and json.Number-style strings are NOT
// included here; see Numeric for string handling) to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}

// parseBound parses a min/max style rule argument. Empty input reports
// missing, unparseable input reports invalid.
func parseBound(s string) (val float64, missing, invalid bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, true
	}
	return f, false, false
}

// formatNumber renders a float the way rule messages expect: integers without
// a decimal part.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
