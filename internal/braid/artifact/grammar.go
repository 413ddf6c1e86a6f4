// Package artifact holds Braid's per-enforcement-bucket compilers: one
// file per artifact family, each a pure function from a bucket of
// constraints to the corresponding internal/ir type.
package artifact

import (
	"fmt"
	"sort"
	"strings"

	"ananke/internal/constraint"
	"ananke/internal/ir"
)

// CompileGrammar synthesizes a context-free grammar from syntactic
// constraints. The start symbol is always "program"; each constraint
// contributes one production under a stable non-terminal name derived
// from its own name, and amends "program" by alternation to reference it.
func CompileGrammar(cs []constraint.Constraint) *ir.Grammar {
	if len(cs) == 0 {
		return nil
	}
	g := &ir.Grammar{StartSymbol: "program"}

	sorted := append([]constraint.Constraint(nil), cs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, c := range sorted {
		nonTerminal := nonTerminalName(c.Name)
		g.AddAlternative("program", []ir.Symbol{ir.Ref(nonTerminal)}, c.ID)
		g.AddAlternative(nonTerminal, []ir.Symbol{ir.Terminal(c.Name)}, c.ID)
	}
	return g
}

// nonTerminalName derives a stable non-terminal name from a constraint
// name: lowercased, non-identifier runes folded to underscore.
func nonTerminalName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "rule"
	}
	return fmt.Sprintf("rule_%s", b.String())
}
