// Package engine is the rule evaluation core of guardrail: it resolves raw
// rule specifications into executable checks, fans them out concurrently per
// (field, rule) pair within each request section, and aggregates the settled
// outcomes into a structured {errors, validated} result.
//
// Evaluation is concurrent by default. Two markers force a field's chain
// back to sequential order: the "bail" token (stop the chain after the first
// failure) and the "nullable" rule (a null value skips the remaining rules
// for that field). The engine-wide stop-on-first-error mode goes further and
// reports the first failing check alone, cancelling work that has not
// started yet.
//
// Validate never returns an error for ordinary field failures; those are
// data in the Result. Errors are reserved for schema-level programmer
// mistakes (an unclassifiable bare rule spec) and panicking checks, which
// the middleware adapter reports as 500-class failures.
package engine
