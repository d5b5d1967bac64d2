package engine

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/guardrail/rules"
)

// invalidCallbackMessage is reported when an inline check violates its
// contract by failing without an error descriptor, or when a function of an
// unsupported shape is supplied as a rule.
const invalidCallbackMessage = "The user provided callback didn't provided a valid return value. Array needed."

type ruleKind int

const (
	kindNormal ruleKind = iota
	kindCustomFunc
	kindInvalid
)

// resolvedRule is the uniform executable descriptor one raw rule spec
// classifies into: a check to run against the data bag and an error builder
// for the failing case. For custom functions the check itself produces the
// descriptor; for everything else message resolves it from the rule.
type resolvedRule struct {
	name    string
	kind    ruleKind
	check   func(ctx context.Context, data map[string]any) (bool, *rules.FieldError)
	message func(data map[string]any) rules.FieldError
}

// customMessage resolves the template override for a field/rule pair:
// "field.rule" wins over "rule", absence means the rule's default template.
func (v *Validator) customMessage(field, name string) string {
	if m, ok := v.schema.Messages[field+"."+name]; ok {
		return m
	}
	return v.schema.Messages[name]
}

// resolve classifies one raw rule spec for a field into an executable
// descriptor. Classification is centralized here; the engine never sniffs
// spec shapes anywhere else.
func (v *Validator) resolve(spec any, field string) resolvedRule {
	label := v.schema.Attributes[field]
	if label == "" {
		label = field
	}

	switch s := spec.(type) {
	case CheckFunc:
		return resolveCheckFunc(s, field)
	case func(ctx context.Context, data map[string]any, field string) (bool, *rules.FieldError):
		return resolveCheckFunc(s, field)
	case rules.Rule:
		return v.resolveRule(s, field, label, "")
	case string:
		if name, arg, found := strings.Cut(s, ":"); found && arg != "" {
			if r, ok := v.set.Get(name); ok {
				return v.resolveRule(r, field, label, arg)
			}
		} else if r, ok := v.set.Get(s); ok {
			return v.resolveRule(r, field, label, "")
		}
		return resolveInvalid(s, field)
	}

	if rv := reflect.ValueOf(spec); rv.Kind() == reflect.Func {
		// A function of any other shape cannot honor the inline check
		// contract; it fails as an invalid callback instead of crashing.
		return resolvedRule{
			name: "invalid-callback",
			kind: kindCustomFunc,
			check: func(context.Context, map[string]any) (bool, *rules.FieldError) {
				return false, &rules.FieldError{Name: "invalid-callback", Message: invalidCallbackMessage}
			},
		}
	}

	return resolveInvalid(spec, field)
}

func resolveCheckFunc(fn CheckFunc, field string) resolvedRule {
	return resolvedRule{
		name: "function",
		kind: kindCustomFunc,
		check: func(ctx context.Context, data map[string]any) (bool, *rules.FieldError) {
			ok, desc := fn(ctx, data, field)
			if ok {
				return true, nil
			}
			if desc == nil {
				return false, &rules.FieldError{Name: "invalid-callback", Message: invalidCallbackMessage}
			}
			return false, desc
		},
	}
}

func (v *Validator) resolveRule(r rules.Rule, field, label, arg string) resolvedRule {
	custom := v.customMessage(field, r.Name())
	return resolvedRule{
		name: r.Name(),
		kind: kindNormal,
		check: func(ctx context.Context, data map[string]any) (bool, *rules.FieldError) {
			return r.Validate(ctx, data, field, arg), nil
		},
		message: func(data map[string]any) rules.FieldError {
			return r.Message(data, field, label, custom, arg)
		},
	}
}

// isFunc reports whether the spec is a function value of any shape.
func isFunc(spec any) bool {
	return spec != nil && reflect.ValueOf(spec).Kind() == reflect.Func
}

func resolveInvalid(spec any, field string) resolvedRule {
	return resolvedRule{
		kind: kindInvalid,
		check: func(context.Context, map[string]any) (bool, *rules.FieldError) {
			return false, nil
		},
		message: func(map[string]any) rules.FieldError {
			return rules.FieldError{
				Name:    fmt.Sprint(spec),
				Message: fmt.Sprintf("Invalid rule %v applied to %s", spec, field),
			}
		},
	}
}
