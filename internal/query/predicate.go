package query

import "strings"

// FieldPath is an ordered path into a nested school document, e.g.
// {"student_groups", "EL", "math_performance", "status"}. Keeping it as a
// typed value lets the compiler and every store adapter share one spelling of
// each path instead of concatenating strings ad hoc.
type FieldPath []string

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// OverallPath addresses an indicator under the school-wide aggregate.
func OverallPath(indicator string, rest ...string) FieldPath {
	return append(FieldPath{"dashboard_indicators", indicator}, rest...)
}

// GroupPath addresses an indicator under a student group.
func GroupPath(group, indicator string, rest ...string) FieldPath {
	return append(FieldPath{"student_groups", group, indicator}, rest...)
}

// Predicate is a store-agnostic filter tree. The repository interprets it
// into a MongoDB filter; Eval interprets it over plain document maps.
type Predicate interface {
	pred()
}

// MatchAll matches every record.
type MatchAll struct{}

// MatchNone matches nothing. Compiled for not-available intents, which the
// orchestrator short-circuits before any store call.
type MatchNone struct{}

// Regex is a case-insensitive substring/regex match on a string field.
type Regex struct {
	Path    FieldPath
	Pattern string
}

// In requires the field value to be one of Values.
type In struct {
	Path   FieldPath
	Values []string
}

// Exists requires the field to be present.
type Exists struct {
	Path FieldPath
}

// And matches when every child matches.
type And struct {
	Preds []Predicate
}

// Or matches when any child matches.
type Or struct {
	Preds []Predicate
}

func (MatchAll) pred()  {}
func (MatchNone) pred() {}
func (Regex) pred()     {}
func (In) pred()        {}
func (Exists) pred()    {}
func (And) pred()       {}
func (Or) pred()        {}
