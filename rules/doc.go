// Package rules provides the named validation predicates evaluated by the
// guardrail engine, plus the Set catalog that resolves rule-string names to
// rule instances.
//
// Every rule implements the Rule interface: a Name, a Validate predicate over
// an untyped data bag, and a Message builder that renders {placeholder}
// templates. Names default to the snake_case form of the concrete type name
// (IsArray registers as "is_array"); CastBoolean overrides its name to the
// historical "boolean".
//
// Rules are grouped per concern: presence (required, present, nullable,
// prohibited), bounds (min, max, between), formats (numeric, alpha,
// regex_match, uuid, email), choices (accepted, declined, boolean),
// collections (is_array) and conditionals (present_if, prohibited_if).
//
// Stateless rules are safe to share across goroutines. Rules carrying fluent
// pre-configuration (Between, PresentIf, ProhibitedIf) are one-shot values:
// configure a fresh instance per schema rather than sharing a configured one
// across concurrent requests.
package rules
