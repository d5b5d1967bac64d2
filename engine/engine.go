package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/guardrail/pkg/async"
	"github.com/dmitrymomot/guardrail/rules"
)

// bailToken is the pseudo-rule marking "stop evaluating this field's chain
// after the first failure". It is not a rule and never reaches the resolver.
const bailToken = "bail"

// Option configures a Validator.
type Option func(*Validator)

// WithRuleSet injects the rule catalog to resolve named rules against.
// Without it every Validator builds its own fresh rules.NewSet, so one
// consumer registering custom rules never affects another.
func WithRuleSet(set *rules.Set) Option {
	return func(v *Validator) {
		if set != nil {
			v.set = set
		}
	}
}

// WithStopOnFirstError makes the whole run short-circuit: the first failing
// check is reported alone and all remaining checks are abandoned.
func WithStopOnFirstError() Option {
	return func(v *Validator) { v.stopOnFirstError = true }
}

// Validator evaluates a Schema against request data. It carries only
// configuration; every Validate call allocates its own aggregation state, so
// a single Validator is safe to share across concurrent requests.
type Validator struct {
	schema           Schema
	set              *rules.Set
	stopOnFirstError bool
}

// New builds a Validator for the given schema.
func New(schema Schema, opts ...Option) *Validator {
	v := &Validator{schema: schema}
	for _, opt := range opts {
		opt(v)
	}
	if v.set == nil {
		v.set = rules.NewSet()
	}
	return v
}

// Validate runs the schema against the request, section by section (body,
// params, query), and returns the consolidated result. A section is only
// processed when the schema declares rules for it and the request supplied
// its data.
//
// The returned error is reserved for schema-level programmer errors
// (ErrInvalidRuleSpec) and panicking checks (ErrCheckPanic); ordinary field
// failures are data in the Result, never an error.
func (v *Validator) Validate(ctx context.Context, req Request) (Result, error) {
	st := newRunState()

	sections := []struct {
		section Section
		rules   map[string]any
		data    map[string]any
	}{
		{SectionBody, v.schema.Body, req.Body},
		{SectionParams, v.schema.Params, req.Params},
		{SectionQuery, v.schema.Query, req.Query},
	}

	for _, s := range sections {
		if len(s.rules) == 0 || s.data == nil {
			continue
		}
		stopped, err := v.validateSection(ctx, st, s.section, s.rules, s.data)
		if err != nil {
			return Result{}, err
		}
		if stopped {
			// Short-circuit: the single recorded failure is the whole result.
			return Result{Errors: st.errorsOnly()}, nil
		}
	}

	return st.result(), nil
}

// unit is one schedulable piece of work: a field with the slice of its chain
// it evaluates. Fully concurrent fields produce one unit per rule; fields
// with a short-circuit marker produce a single sequential unit.
type unit struct {
	field string
	specs []any
}

func (v *Validator) validateSection(ctx context.Context, st *runState, section Section, fieldRules map[string]any, data map[string]any) (bool, error) {
	var units []unit

	// Sorted field order keeps error precedence and short-circuit reporting
	// deterministic.
	sortedFields := make([]string, 0, len(fieldRules))
	for field := range fieldRules {
		sortedFields = append(sortedFields, field)
	}
	slices.Sort(sortedFields)
	for _, field := range sortedFields {
		specs, err := normalizeSpecs(fieldRules[field], field)
		if err != nil {
			return false, err
		}
		if chainHasMarker(specs) {
			units = append(units, unit{field: field, specs: specs})
			continue
		}
		for _, spec := range specs {
			units = append(units, unit{field: field, specs: []any{spec}})
		}
	}

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	futures := make([]*async.Future[[]outcome], len(units))
	for i, u := range units {
		futures[i] = async.Async(sctx, u, func(ctx context.Context, u unit) (outs []outcome, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrCheckPanic, r)
				}
			}()
			return v.runChain(ctx, data, u.field, u.specs), nil
		})
	}

	if v.stopOnFirstError {
		for _, f := range futures {
			outs, err := f.Await()
			if err != nil {
				return false, err
			}
			for _, o := range outs {
				if !o.ok {
					cancel()
					st.addError(section, o.field, o.ferr)
					return true, nil
				}
			}
		}
		// No failures: fall through to a normal aggregate of the settled
		// outcomes.
		for _, f := range futures {
			outs, _ := f.Await()
			st.record(section, outs)
		}
		return false, nil
	}

	results, err := async.WaitAll(futures...)
	if err != nil {
		return false, err
	}
	for _, outs := range results {
		st.record(section, outs)
	}
	return false, nil
}

// outcome is the settled result of one (field, rule) check.
type outcome struct {
	field string
	ok    bool
	ferr  rules.FieldError
	value any
}

// runChain evaluates a field's rule specs in order. For single-spec units
// this is one check; for marker chains it is the sequential short-circuit
// walk: a bail token stops the chain after the first failure, and a passing
// nullable rule over a null value skips every remaining rule for the field.
func (v *Validator) runChain(ctx context.Context, data map[string]any, field string, specs []any) []outcome {
	var outs []outcome
	bail := chainHasBail(specs)

	for _, spec := range specs {
		if s, ok := spec.(string); ok && s == bailToken {
			continue
		}

		r := v.resolve(spec, field)
		ok, desc := r.check(ctx, data)

		if !ok {
			ferr := rules.FieldError{}
			if desc != nil {
				ferr = *desc
			} else if r.message != nil {
				ferr = r.message(data)
			}
			outs = append(outs, outcome{field: field, ok: false, ferr: ferr})
			if bail {
				break
			}
			continue
		}

		outs = append(outs, outcome{field: field, ok: true, value: data[field]})

		if r.name == "nullable" {
			if value, exists := data[field]; exists && value == nil {
				break
			}
		}
	}

	return outs
}

// normalizeSpecs turns a field's raw rule spec into an ordered slice of
// single specs. Strings split on "|", slices pass through element-wise. A
// bare value of any other non-rule, non-function shape is a schema-level
// programmer error, distinct from an invalid element inside a slice which
// degrades to a per-field error during resolution.
func normalizeSpecs(raw any, field string) ([]any, error) {
	switch s := raw.(type) {
	case string:
		parts := strings.Split(s, "|")
		specs := make([]any, len(parts))
		for i, p := range parts {
			specs[i] = p
		}
		return specs, nil
	case []any:
		return s, nil
	case []string:
		specs := make([]any, len(s))
		for i, p := range s {
			specs[i] = p
		}
		return specs, nil
	case rules.Rule:
		return []any{s}, nil
	case CheckFunc:
		return []any{s}, nil
	case func(ctx context.Context, data map[string]any, field string) (bool, *rules.FieldError):
		return []any{s}, nil
	}
	if isFunc(raw) {
		return []any{raw}, nil
	}
	return nil, fmt.Errorf("%w: invalid rule %v applied to %s", ErrInvalidRuleSpec, raw, field)
}

// chainHasMarker reports whether a chain needs sequential per-field
// evaluation: it contains a bail token or a nullable rule.
func chainHasMarker(specs []any) bool {
	if len(specs) < 2 {
		return false
	}
	if chainHasBail(specs) {
		return true
	}
	for _, spec := range specs {
		switch s := spec.(type) {
		case string:
			if s == "nullable" {
				return true
			}
		case rules.Rule:
			if s.Name() == "nullable" {
				return true
			}
		}
	}
	return false
}

func chainHasBail(specs []any) bool {
	for _, spec := range specs {
		if s, ok := spec.(string); ok && s == bailToken {
			return true
		}
	}
	return false
}
