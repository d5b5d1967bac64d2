package engine

import "errors"

var (
	// ErrInvalidRuleSpec reports a rule specification the engine cannot
	// classify at the top level of a field: not a string, not a rules.Rule,
	// not a function and not a slice. This is a programmer error in the
	// schema itself, so it aborts the whole section instead of degrading to
	// a per-field validation error.
	ErrInvalidRuleSpec = errors.New("engine: invalid rule specification")

	// ErrCheckPanic reports a validation check that panicked. The middleware
	// adapter turns it into a 500-class failure.
	ErrCheckPanic = errors.New("engine: validation check panicked")
)
