package rules

import "strings"

// Set is a name-indexed catalog of rules. A new Set is pre-seeded with every
// built-in rule; Add registers further rules keyed by their own Name, with
// the last write winning so applications and tests can override built-ins.
//
// Each Set owns a fresh copy of the built-ins: mutating one Set never leaks
// into another. Sets are read-only while requests are being validated;
// register rules at configuration time.
type Set struct {
	rules map[string]Rule
}

// NewSet builds a Set seeded with the built-in rules.
func NewSet() *Set {
	s := &Set{rules: make(map[string]Rule)}
	s.Add(
		&Required{},
		&Numeric{},
		&IsArray{},
		&Min{},
		&Max{},
		NewBetween(),
		&RegexMatch{},
		&Alpha{},
		&Accepted{},
		&Declined{},
		&CastBoolean{},
		&Present{},
		&Prohibited{},
		&Nullable{},
		NewPresentIf(),
		NewProhibitedIf(),
		&UUID{},
		&Email{},
	)
	return s
}

// Add registers one or more rules under their own names.
func (s *Set) Add(rules ...Rule) {
	for _, r := range rules {
		s.rules[r.Name()] = r
	}
}

// Get looks up a rule by name.
func (s *Set) Get(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Match splits a "name:argument" rule string. The argument may itself carry
// further ":" or comma structure; parsing it is the matched rule's job, not
// the Set's. A string with no ":" is a bare name with an empty argument.
func (s *Set) Match(rule string) (name, arg string) {
	name, arg, _ = strings.Cut(rule, ":")
	return name, arg
}
