// Package constraint defines the atom of the Ananke pipeline: a Constraint,
// the ordered ConstraintSet that owns a group of them, and the small value
// types (Kind, Enforcement, Priority, Severity) that classify a Constraint.
//
// Constraint and ConstraintSet are carried by value between Clew and Braid.
// There is no backing arena: Go's garbage collector already gives every
// string its own lifetime, so an owning-allocator model collapses to "the
// ConstraintSet's slice owns its Constraint values" — freeing a
// ConstraintSet is just letting it go out of scope.
package constraint

import "time"

// Kind classifies what a Constraint is about.
type Kind string

const (
	KindSyntactic     Kind = "syntactic"
	KindTypeSafety    Kind = "type_safety"
	KindSemantic      Kind = "semantic"
	KindArchitectural Kind = "architectural"
	KindOperational   Kind = "operational"
	KindSecurity      Kind = "security"
)

// Enforcement names the artifact family a Constraint feeds in Braid.
type Enforcement string

const (
	EnforcementSyntactic  Enforcement = "syntactic"
	EnforcementStructural Enforcement = "structural"
	EnforcementSemantic   Enforcement = "semantic"
	EnforcementPerformance Enforcement = "performance"
	EnforcementSecurity   Enforcement = "security"
)

// Priority is an ordinal scheduling weight; higher wins conflicts.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// String renders the priority the way the compile_constraints JSON input
// spells it.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParsePriority inverts Priority.String.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	default:
		return 0, false
	}
}

// Severity affects reporting only, never compilation semantics.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Constraint is a single discrete, provenance-tagged property to enforce.
type Constraint struct {
	ID          uint64
	Name        string
	Description string
	Kind        Kind
	Source      Source
	Enforcement Enforcement
	Priority    Priority
	Severity    Severity
	Confidence  float64
	Frequency   int
	OriginFile  string
	OriginLine  int
	CreatedAt   time.Time

	// DependsOn lists the IDs of constraints this one declares a dependency
	// on, consumed by Braid's dependency graph.
	DependsOn []uint64

	// AllowedTokens and ForbiddenTokens carry the vocabulary token ids a
	// performance/security constraint enumerates directly, compiled into a
	// token mask. Ananke never resolves token text to ids; a Go caller that
	// builds the Constraint supplies them already resolved against its own
	// vocabulary. The compile_constraints JSON shape carries no token ids.
	AllowedTokens   []uint32
	ForbiddenTokens []uint32
}

// ConstraintSet is an owned, ordered collection of Constraint plus a label.
// Duplicate IDs are permitted and treated as independent evidence —
// ConstraintSet performs no de-duplication.
type ConstraintSet struct {
	Name        string
	Constraints []Constraint
}

// NewConstraintSet returns an empty, named set.
func NewConstraintSet(name string) *ConstraintSet {
	return &ConstraintSet{Name: name}
}

// Add appends c to the set and returns the set for chaining.
func (s *ConstraintSet) Add(c Constraint) *ConstraintSet {
	s.Constraints = append(s.Constraints, c)
	return s
}

// Len returns the number of constraints currently held.
func (s *ConstraintSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Constraints)
}

// Merge appends every constraint of other into s, preserving order and
// duplicates: Clew's recognizer set is union-semantics, so two recognizers
// proposing the same constraint both survive rather than being collapsed.
func (s *ConstraintSet) Merge(other *ConstraintSet) {
	if other == nil {
		return
	}
	s.Constraints = append(s.Constraints, other.Constraints...)
}

// CompatibleEnforcements reports which Enforcement values are permitted for
// a given Kind.
func CompatibleEnforcements(k Kind) []Enforcement {
	switch k {
	case KindSyntactic:
		return []Enforcement{EnforcementSyntactic}
	case KindTypeSafety:
		return []Enforcement{EnforcementStructural, EnforcementSemantic}
	case KindSemantic:
		return []Enforcement{EnforcementSemantic}
	case KindArchitectural:
		return []Enforcement{EnforcementStructural}
	case KindOperational:
		return []Enforcement{EnforcementPerformance}
	case KindSecurity:
		return []Enforcement{EnforcementSecurity}
	default:
		return nil
	}
}

// EnforcementCompatible reports whether e is a legal enforcement for k.
func EnforcementCompatible(k Kind, e Enforcement) bool {
	for _, allowed := range CompatibleEnforcements(k) {
		if allowed == e {
			return true
		}
	}
	return false
}
