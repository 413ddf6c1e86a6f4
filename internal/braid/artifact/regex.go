package artifact

import (
	"fmt"
	"regexp"
	"sort"

	"ananke/internal/constraint"
	"ananke/internal/ir"
)

// CompileRegexPatterns compiles semantic constraints naturally expressible
// as a pattern into {pattern, flags} entries, ordered priority desc then
// id asc. Constraints without a derivable pattern are reported so the
// caller can turn them into Holes.
func CompileRegexPatterns(cs []constraint.Constraint) (patterns []ir.RegexPattern, unresolved []constraint.Constraint) {
	sorted := append([]constraint.Constraint(nil), cs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, c := range sorted {
		pattern, ok := derivePattern(c)
		if !ok {
			unresolved = append(unresolved, c)
			continue
		}
		patterns = append(patterns, pattern)
	}
	return patterns, unresolved
}

// derivePattern attempts a deterministic regex derivation from a
// constraint's source. Only Telemetry-sourced constraints compile, to a
// pattern matching their metric name, a comparison operator and their
// threshold; anything else is left unresolved rather than guessed at.
func derivePattern(c constraint.Constraint) (ir.RegexPattern, bool) {
	if c.Name == "" {
		return ir.RegexPattern{}, false
	}
	switch s := c.Source.(type) {
	case constraint.Telemetry:
		return ir.RegexPattern{Pattern: fmt.Sprintf(`%s\s*[<>=]+\s*%g`, regexp.QuoteMeta(s.Metric), s.Threshold)}, true
	default:
		return ir.RegexPattern{}, false
	}
}
