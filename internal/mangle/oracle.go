// Package mangle adapts github.com/google/mangle into Ananke's two oracle
// capability interfaces: braid.ConflictResolver and clew.SemanticOracle.
// A conflicting pair of constraints is asserted as a Datalog fact and
// resolved by a small fixed rule set, so the tie-break policy is a
// declarative, auditable program instead of an ad hoc comparison.
//
// Grounded on the teacher's internal/mangle/engine.go Engine: parse a
// schema+rule source with parse.Unit, analyze it with
// analysis.AnalyzeOneUnit to get a predicate index keyed by symbol name,
// build ast.Atom{Predicate, Args} facts by hand, add them to a
// factstore.SimpleInMemoryStore, evaluate with
// mangle/engine.EvalProgramWithStats, and read results back out with
// store.GetFacts(ast.NewQuery(sym), callback).
package mangle

import (
	"context"
	"fmt"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"ananke/internal/braid"
	"ananke/internal/constraint"
)

// schemaSource declares conflict_pair (asserted per call) and the keep_a
// rule: the constraint with the numerically higher severity rank keeps;
// a tie derives nothing, and Resolve then declines so Braid's rule-4
// fallback (earlier created_at) applies.
const schemaSource = `
Decl conflict_pair(A, B, SeverityA, SeverityB)
  descr [mode('+', '+', '+', '+')].

Decl keep_a(A, B)
  descr [mode('+', '+')].

keep_a(A, B) :- conflict_pair(A, B, SeverityA, SeverityB), :gt(SeverityA, SeverityB).
`

var severityRank = map[constraint.Severity]int64{
	constraint.SeverityHint:    0,
	constraint.SeverityInfo:    1,
	constraint.SeverityWarning: 2,
	constraint.SeverityError:   3,
}

// Oracle is a google/mangle-backed ConflictResolver and (trivially) a
// clew.SemanticOracle.
type Oracle struct {
	programInfo    analysis.ProgramInfo
	predicateIndex map[string]ast.PredicateSym
}

// New parses and analyzes the fixed schema once; Resolve reuses it across
// calls with a fresh fact store per call.
func New() (*Oracle, error) {
	unit, err := parse.Unit([]rune(schemaSource))
	if err != nil {
		return nil, fmt.Errorf("mangle: parse schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("mangle: analyze schema: %w", err)
	}

	index := make(map[string]ast.PredicateSym, len(programInfo.Decls))
	for sym := range programInfo.Decls {
		index[sym.Symbol] = sym
	}
	return &Oracle{programInfo: programInfo, predicateIndex: index}, nil
}

// Resolve implements braid.ConflictResolver.
func (o *Oracle) Resolve(ctx context.Context, a, b constraint.Constraint) (braid.Decision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conflictSym, ok := o.predicateIndex["conflict_pair"]
	if !ok {
		return "", fmt.Errorf("mangle: conflict_pair not declared")
	}
	keepASym := o.predicateIndex["keep_a"]

	store := factstore.NewSimpleInMemoryStore()
	fact := ast.Atom{
		Predicate: conflictSym,
		Args: []ast.BaseTerm{
			ast.Number(int64(a.ID)),
			ast.Number(int64(b.ID)),
			ast.Number(severityRank[a.Severity]),
			ast.Number(severityRank[b.Severity]),
		},
	}
	store.Add(fact)

	if _, err := mengine.EvalProgramWithStats(o.programInfo, store); err != nil {
		return "", fmt.Errorf("mangle: eval: %w", err)
	}

	var aKeeps bool
	_ = store.GetFacts(ast.NewQuery(keepASym), func(ast.Atom) error {
		aKeeps = true
		return nil
	})

	if aKeeps {
		return braid.DecisionDisableB, nil
	}

	swapped := factstore.NewSimpleInMemoryStore()
	swapped.Add(ast.Atom{Predicate: conflictSym, Args: []ast.BaseTerm{
		ast.Number(int64(b.ID)), ast.Number(int64(a.ID)),
		ast.Number(severityRank[b.Severity]), ast.Number(severityRank[a.Severity]),
	}})
	if _, err := mengine.EvalProgramWithStats(o.programInfo, swapped); err != nil {
		return "", fmt.Errorf("mangle: eval: %w", err)
	}
	var bKeeps bool
	_ = swapped.GetFacts(ast.NewQuery(keepASym), func(ast.Atom) error { bKeeps = true; return nil })
	if bKeeps {
		return braid.DecisionDisableA, nil
	}
	return "", fmt.Errorf("mangle: severities tied, no resolution derived")
}

// Analyze implements clew.SemanticOracle. This schema models conflict
// resolution, not source understanding, so it proposes nothing.
func (o *Oracle) Analyze(ctx context.Context, src, lang string) ([]constraint.Constraint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
