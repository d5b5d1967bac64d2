package rules

import (
	"context"
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	googleuuid "github.com/google/uuid"
)

// Numeric passes when the value is a finite number or a string that converts
// losslessly to one. Surrounding whitespace in strings is allowed.
type Numeric struct{}

func (r *Numeric) Name() string { return deriveName(r) }

func (r *Numeric) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	v := data[field]
	if f, ok := toFloat(v); ok {
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (r *Numeric) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be a number", map[string]string{"field": label}),
	}
}

var (
	alphaUnicodeRe = regexp.MustCompile(`^[\p{L}\p{M}]+$`)
	alphaASCIIRe   = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// Alpha passes when the value is a string made up entirely of Unicode letters
// and marks. With the "ascii" argument it restricts to [a-zA-Z].
type Alpha struct{}

func (r *Alpha) Name() string { return deriveName(r) }

func (r *Alpha) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	s, ok := data[field].(string)
	if !ok {
		return false
	}
	if arg == "ascii" {
		return alphaASCIIRe.MatchString(s)
	}
	return alphaUnicodeRe.MatchString(s)
}

func (r *Alpha) Message(_ map[string]any, _, label, custom, arg string) FieldError {
	tpl := "The {field} field must be entirely Unicode alphabetic characters contained in the Unicode General Category Letter (L) or Mark (M)"
	if arg == "ascii" {
		tpl = "The {field} field must be entirely ASCII alphabetic characters (a-zA-Z)"
	}
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, tpl, map[string]string{"field": label}),
	}
}

// RegexMatch passes when the value is a string matching the pattern given in
// the rule argument. The argument accepts the "/pattern/flags/" notation of
// rule strings; the i, m and s flags map to the corresponding Go regexp
// flags, a bare pattern is compiled as-is. An uncompilable pattern fails.
type RegexMatch struct{}

func (r *RegexMatch) Name() string { return deriveName(r) }

func (r *RegexMatch) Validate(_ context.Context, data map[string]any, field, arg string) bool {
	s, ok := data[field].(string)
	if !ok {
		return false
	}
	re, err := compilePattern(arg)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func (r *RegexMatch) Message(_ map[string]any, _, label, custom, arg string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} value must match the pattern {value}", map[string]string{"field": label, "value": arg}),
	}
}

// compilePattern turns a "/pattern/flags" rule argument into a compiled
// regexp. Without surrounding slashes the whole argument is the pattern.
func compilePattern(arg string) (*regexp.Regexp, error) {
	pattern := arg
	if len(arg) >= 2 && strings.HasPrefix(arg, "/") {
		if end := strings.LastIndex(arg, "/"); end > 0 {
			pattern = arg[1:end]
			var mods strings.Builder
			for _, f := range arg[end+1:] {
				switch f {
				case 'i', 'm', 's':
					mods.WriteRune(f)
				}
			}
			if mods.Len() > 0 {
				pattern = "(?" + mods.String() + ")" + pattern
			}
		}
	}
	return regexp.Compile(pattern)
}

// UUID passes when the value is a canonically formatted UUID string.
type UUID struct{}

func (r *UUID) Name() string { return deriveName(r) }

func (r *UUID) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	s, ok := data[field].(string)
	if !ok || len(s) != 36 {
		return false
	}
	// Fast rejection before parsing.
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}

func (r *UUID) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be a valid UUID", map[string]string{"field": label}),
	}
}

// Email passes when the value is a string holding a single RFC 5322 address
// with a dotted domain, the shape typical web forms expect.
type Email struct{}

func (r *Email) Name() string { return deriveName(r) }

func (r *Email) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	s, ok := data[field].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	local, domain, found := strings.Cut(addr.Address, "@")
	if !found || local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".")
}

func (r *Email) Message(_ map[string]any, _, label, custom, _ string) FieldError {
	return FieldError{
		Name:    r.Name(),
		Message: renderMessage(custom, "The {field} field must be a valid email address", map[string]string{"field": label}),
	}
}
