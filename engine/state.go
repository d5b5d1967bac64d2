package engine

import "github.com/dmitrymomot/guardrail/rules"

// runState is the aggregation state of a single Validate call. Each call
// allocates its own; it is never stored on the Validator, which keeps
// concurrent invocations isolated by construction.
type runState struct {
	errors    map[Section]map[string]map[string]string
	validated map[Section]map[string]any
}

func newRunState() *runState {
	return &runState{
		errors:    make(map[Section]map[string]map[string]string),
		validated: make(map[Section]map[string]any),
	}
}

func (st *runState) record(section Section, outs []outcome) {
	for _, o := range outs {
		if o.ok {
			st.addValidated(section, o.field, o.value)
		} else {
			st.addError(section, o.field, o.ferr)
		}
	}
}

// addError merges a failing rule's entry into the field's error map. Existing
// entries win on conflict, so when several rules on one field fail, the first
// failure recorded keeps display priority.
func (st *runState) addError(section Section, field string, fe rules.FieldError) {
	sec, ok := st.errors[section]
	if !ok {
		sec = make(map[string]map[string]string)
		st.errors[section] = sec
	}
	fieldErrs, ok := sec[field]
	if !ok {
		fieldErrs = make(map[string]string)
		sec[field] = fieldErrs
	}
	if _, exists := fieldErrs[fe.Name]; !exists {
		fieldErrs[fe.Name] = fe.Message
	}
}

func (st *runState) addValidated(section Section, field string, value any) {
	sec, ok := st.validated[section]
	if !ok {
		sec = make(map[string]any)
		st.validated[section] = sec
	}
	sec[field] = value
}

// errorsOnly builds the Errors view of the current state, used for the
// stop-on-first-error short-circuit where validated data is not reported.
func (st *runState) errorsOnly() Errors {
	var e Errors
	if sec := st.errors[SectionBody]; len(sec) > 0 {
		e.Body = sec
	}
	if sec := st.errors[SectionParams]; len(sec) > 0 {
		e.Params = sec
	}
	if sec := st.errors[SectionQuery]; len(sec) > 0 {
		e.Query = sec
	}
	return e
}

// result builds the final Result: only non-empty sections appear, and fields
// with errors are removed from the validated maps so the two are mutually
// exclusive per field.
func (st *runState) result() Result {
	for section, fieldErrs := range st.errors {
		for field := range fieldErrs {
			delete(st.validated[section], field)
		}
	}

	var r Result
	r.Errors = st.errorsOnly()
	if sec := st.validated[SectionBody]; len(sec) > 0 {
		r.Validated.Body = sec
	}
	if sec := st.validated[SectionParams]; len(sec) > 0 {
		r.Validated.Params = sec
	}
	if sec := st.validated[SectionQuery]; len(sec) > 0 {
		r.Validated.Query = sec
	}
	return r
}
