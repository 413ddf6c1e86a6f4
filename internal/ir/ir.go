// Package ir defines ConstraintIR and its sub-artifacts: the compiled
// product Braid hands back to its caller, and that the FFI boundary
// (cmd/libananke) deep-copies into a C-owned handle.
package ir

import (
	"fmt"

	"ananke/internal/obslog"
)

// ConstraintIR is the compiled artifact produced by Braid.Compile.
type ConstraintIR struct {
	Name          string
	JSONSchema    *JSONSchema
	Grammar       *Grammar
	RegexPatterns []RegexPattern
	TokenMasks    *TokenMasks
	Priority      uint32
	Holes         []Hole
	Diagnostics   obslog.Events
}

// RegexPattern is one compiled semantic-enforcement artifact.
type RegexPattern struct {
	Pattern string
	Flags   string
}

// Validate checks the shape invariants a compiled IR must hold. A non-nil
// error here means Braid has a bug in its finalization phase, not a
// caller mistake.
func (c *ConstraintIR) Validate() error {
	if c == nil {
		return nil
	}
	if c.TokenMasks != nil {
		if inter := c.TokenMasks.Intersection(); len(inter) > 0 {
			return fmt.Errorf("ir: token_masks allowed/forbidden overlap on %d ids", len(inter))
		}
	}
	if c.Grammar != nil {
		if !c.Grammar.hasProduction(c.Grammar.StartSymbol) {
			return fmt.Errorf("ir: grammar start symbol %q names no production", c.Grammar.StartSymbol)
		}
	}
	if c.JSONSchema != nil {
		for _, req := range c.JSONSchema.Required {
			if _, ok := c.JSONSchema.Properties[req]; !ok {
				return fmt.Errorf("ir: json_schema required property %q is not declared", req)
			}
		}
	}
	return nil
}

// IsEmpty reports whether every optional artifact is absent, the shape
// compiling an empty constraint set must produce.
func (c *ConstraintIR) IsEmpty() bool {
	return c.JSONSchema == nil && c.Grammar == nil && len(c.RegexPatterns) == 0 &&
		c.TokenMasks == nil && c.Priority == 0
}
