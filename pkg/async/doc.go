// Package async provides minimal Future-based primitives for fanning out
// independent units of work and collecting their results.
//
// The guardrail engine uses it to launch every (field, rule) check of a
// request section concurrently and then barrier on the full set, or to walk
// the futures in order and stop at the first failure when short-circuit
// evaluation is configured.
package async
