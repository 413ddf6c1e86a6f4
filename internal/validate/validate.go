// Package validate is the pure constraint validator shared by Clew and
// Braid. It holds no state and calls out to no oracle.
package validate

import (
	"fmt"

	"ananke/internal/constraint"
)

// Problem describes one reason a Constraint failed validation.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// Check returns every invariant violation found on c. A nil/empty result
// means c is well-formed.
func Check(c constraint.Constraint) []Problem {
	var problems []Problem

	if c.Name == "" {
		problems = append(problems, Problem{"name", "must not be empty"})
	}
	if c.Description == "" {
		problems = append(problems, Problem{"description", "must not be empty"})
	}
	if c.Confidence < 0.0 || c.Confidence > 1.0 {
		problems = append(problems, Problem{"confidence", "must be in [0,1]"})
	}
	if c.Source == nil {
		problems = append(problems, Problem{"source", "must not be nil"})
	}
	if !constraint.EnforcementCompatible(c.Kind, c.Enforcement) {
		problems = append(problems, Problem{
			"enforcement",
			fmt.Sprintf("%q is not a permitted enforcement for kind %q", c.Enforcement, c.Kind),
		})
	}

	return problems
}

// Valid reports whether c satisfies every invariant.
func Valid(c constraint.Constraint) bool {
	return len(Check(c)) == 0
}

// RemoveInvalid filters invalid constraints out of set in place and returns
// the count removed. It never removes a constraint that passes Valid.
func RemoveInvalid(set *constraint.ConstraintSet) int {
	if set == nil {
		return 0
	}
	kept := set.Constraints[:0]
	removed := 0
	for _, c := range set.Constraints {
		if Valid(c) {
			kept = append(kept, c)
		} else {
			removed++
		}
	}
	set.Constraints = kept
	return removed
}
