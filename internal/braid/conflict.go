package braid

import (
	"context"
	"time"

	"ananke/internal/constraint"
	"ananke/internal/obslog"
)

// findConflicts looks for pairs of constraints whose semantic extents
// contradict: required vs forbidden on the same token class, mutually
// exclusive regex patterns, or grammar rules producing disjoint languages
// for the same non-terminal. Braid approximates "semantic extent
// contradiction" with a same-bucket, same-name heuristic: two constraints
// that target the same enforcement artifact under the same name but
// disagree on severity are the conflicts this pipeline can detect without
// a full semantic model of each artifact family.
func findConflicts(cs []constraint.Constraint) [][2]int {
	var pairs [][2]int
	byKey := make(map[string][]int)
	var keys []string
	for i, c := range cs {
		key := string(c.Enforcement) + "/" + c.Name
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], i)
	}
	for _, key := range keys {
		idxs := byKey[key]
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				a, b := cs[idxs[i]], cs[idxs[j]]
				if conflicts(a, b) {
					pairs = append(pairs, [2]int{idxs[i], idxs[j]})
				}
			}
		}
	}
	return pairs
}

// conflicts reports whether a and b contradict rather than merely
// duplicate. Same name + same enforcement + different severity is the
// concrete signal available on the Constraint type itself: Ananke has no
// semantic model of "mutually exclusive regex" beyond what the
// constraint's own fields assert.
func conflicts(a, b constraint.Constraint) bool {
	return a.Severity != b.Severity
}

// resolveConflicts applies the priority/confidence/oracle/created_at
// resolution ladder to every detected pair, filtering losers out of the
// returned slice and recording each resolution.
func resolveConflicts(ctx context.Context, cs []constraint.Constraint, resolver ConflictResolver, diag *obslog.Events, now time.Time) []constraint.Constraint {
	disabled := make(map[int]bool)
	pairs := findConflicts(cs)

	for _, pair := range pairs {
		i, j := pair[0], pair[1]
		if disabled[i] || disabled[j] {
			continue
		}
		a, b := cs[i], cs[j]

		loser := -1
		switch {
		case a.Priority != b.Priority:
			if a.Priority > b.Priority {
				loser = j
			} else {
				loser = i
			}
		case a.Confidence != b.Confidence:
			if a.Confidence > b.Confidence {
				loser = j
			} else {
				loser = i
			}
		default:
			if resolver != nil {
				decision, err := resolver.Resolve(ctx, a, b)
				if err == nil {
					switch decision {
					case DecisionDisableA:
						loser = i
					case DecisionDisableB:
						loser = j
					case DecisionMerge, DecisionModifyA, DecisionModifyB:
						// Merging/modifying in place is artifact-specific
						// and handled at compilation time in phase 4; here
						// we simply keep both and let the artifact
						// compiler fold them.
						loser = -2
					}
				}
			}
			if loser == -1 {
				// Rule 4 fallback: earlier created_at wins.
				if a.CreatedAt.Before(b.CreatedAt) || a.CreatedAt.Equal(b.CreatedAt) {
					loser = j
				} else {
					loser = i
				}
			}
		}

		if loser >= 0 {
			disabled[loser] = true
			diag.Record(now, obslog.KindConflictResolved, "conflict auto-resolved", cs[i].ID, cs[j].ID)
		} else {
			diag.Record(now, obslog.KindConflictResolved, "conflict resolved by merge", cs[i].ID, cs[j].ID)
		}
	}

	out := make([]constraint.Constraint, 0, len(cs))
	for i, c := range cs {
		if !disabled[i] {
			out = append(out, c)
		}
	}
	return out
}
