// Package braid implements the compiler half of the Ananke pipeline:
// Constraints[] → ConstraintIR, in five fixed phases.
//
// Grounded on the teacher's internal/mangle/engine.go Engine type: a
// struct wrapping a pluggable backend (there, a Datalog engine; here, an
// optional conflict-resolver oracle) behind a small method surface
// (Compile/SetConflictResolver), with every step logged through an
// injected *zap.Logger rather than the global logger.
package braid

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ananke/internal/braid/artifact"
	"ananke/internal/constraint"
	"ananke/internal/ir"
	"ananke/internal/logging"
	"ananke/internal/obslog"
	"ananke/internal/validate"
)

// ErrEmptyValidSet is returned when every input constraint fails
// validation during intake.
var ErrEmptyValidSet = fmt.Errorf("braid: no valid constraints in input set")

// ErrInvariantViolation wraps a finalization-phase invariant failure: a
// bug in Braid itself, never a caller mistake.
type ErrInvariantViolation struct{ Err error }

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("braid: compiler invariant violation: %v", e.Err)
}
func (e *ErrInvariantViolation) Unwrap() error { return e.Err }

// Compiler runs Braid's five-phase pipeline.
type Compiler struct {
	logger   *zap.Logger
	resolver ConflictResolver
	now      func() time.Time
}

// Option configures a new Compiler.
type Option func(*Compiler)

// WithLogger injects a structured logger (nil-safe).
func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) { c.logger = logging.NopIfNil(l) }
}

// WithClock overrides the compiler's time source; tests use this for
// deterministic diagnostic timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// New builds a Compiler with mechanical (non-oracle) default behavior.
func New(opts ...Option) *Compiler {
	c := &Compiler{resolver: NopResolver{}, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NopIfNil(c.logger)
	return c
}

// SetConflictResolver installs (or clears, with nil) the oracle consulted
// on priority/confidence ties.
func (c *Compiler) SetConflictResolver(r ConflictResolver) {
	if r == nil {
		r = NopResolver{}
	}
	c.resolver = r
}

// Compile runs the five-phase pipeline over set and returns a finalized
// ConstraintIR.
func (c *Compiler) Compile(ctx context.Context, set *constraint.ConstraintSet) (*ir.ConstraintIR, error) {
	var diagnostics obslog.Events
	name := ""
	if set != nil {
		name = set.Name
	}

	if set == nil || len(set.Constraints) == 0 {
		return &ir.ConstraintIR{Name: name}, nil
	}

	// Phase 1: intake & grouping.
	valid := make([]constraint.Constraint, 0, len(set.Constraints))
	for _, cc := range set.Constraints {
		if validate.Valid(cc) {
			valid = append(valid, cc)
		} else {
			diagnostics.Record(c.now(), obslog.KindConstraintDropped,
				fmt.Sprintf("constraint %q failed validation", cc.Name), cc.ID, 0)
		}
	}
	if len(valid) == 0 {
		return nil, ErrEmptyValidSet
	}

	// Phase 2: dependency graph, deterministic cycle breaking.
	graph := buildGraph(valid)
	graph.breakCycles(&diagnostics, c.now())
	ordered := reorderByDependency(valid, graph.topoOrder())
	c.logger.Debug("dependency order computed", zap.Int("count", len(ordered)))

	// Phase 3: conflict detection & resolution, walking constraints in
	// dependency order so a dependency's conflict is settled before the
	// constraints that declared a dependency on it.
	resolved := resolveConflicts(ctx, ordered, c.resolver, &diagnostics, c.now())

	// Phase 4: per-artifact compilation, bucketed by enforcement.
	buckets := bucketByEnforcement(resolved)

	grammar := artifact.CompileGrammar(buckets[constraint.EnforcementSyntactic])
	schema := artifact.CompileSchema(buckets[constraint.EnforcementStructural])
	regexPatterns, unresolved := artifact.CompileRegexPatterns(buckets[constraint.EnforcementSemantic])
	tokenMasks := artifact.CompileTokenMasks(append(
		buckets[constraint.EnforcementPerformance],
		buckets[constraint.EnforcementSecurity]...,
	))

	var holes []ir.Hole
	for _, cc := range unresolved {
		now := c.now()
		holes = append(holes, ir.Hole{
			ID:                 fmt.Sprintf("hole-%d", cc.ID),
			ConstraintID:       cc.ID,
			Scale:              ir.ScaleExpression,
			Origin:             "braid.artifact.regex",
			ResolutionStrategy: "none",
			Confidence:         cc.Confidence,
			Location:           ir.Location{File: cc.OriginFile, Line: cc.OriginLine},
			Provenance:         cc.Name,
			Reason:             "semantic constraint has no deterministically derivable pattern",
			CreatedAt:          now,
		})
		diagnostics.Record(now, obslog.KindHoleEmitted,
			fmt.Sprintf("constraint %q emitted as a hole", cc.Name), cc.ID, 0)
	}

	if tokenMasks != nil {
		if inter := tokenMasks.Intersection(); len(inter) > 0 {
			tokenMasks.Allowed = subtract(tokenMasks.Allowed, inter)
			diagnostics.Record(c.now(), obslog.KindTokenMaskNarrowed,
				fmt.Sprintf("%d token id(s) removed from allowed set", len(inter)), 0, 0)
		}
	}

	result := &ir.ConstraintIR{
		Name:          name,
		JSONSchema:    schema,
		Grammar:       grammar,
		RegexPatterns: regexPatterns,
		TokenMasks:    tokenMasks,
		Priority:      maxPriority(resolved),
		Holes:         holes,
		Diagnostics:   diagnostics,
	}

	// Phase 5: finalization & invariant re-check.
	if err := result.Validate(); err != nil {
		return nil, &ErrInvariantViolation{Err: err}
	}
	return result, nil
}

// subtract returns ids minus remove, preserving ids' order.
func subtract(ids, remove []uint32) []uint32 {
	drop := make(map[uint32]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// reorderByDependency resequences cs into the dependency order computed by
// topoOrder, so later phases settle a constraint's dependencies before the
// constraint itself.
func reorderByDependency(cs []constraint.Constraint, order []uint64) []constraint.Constraint {
	byID := make(map[uint64][]constraint.Constraint, len(cs))
	for _, cc := range cs {
		byID[cc.ID] = append(byID[cc.ID], cc)
	}
	out := make([]constraint.Constraint, 0, len(cs))
	for _, id := range order {
		out = append(out, byID[id]...)
	}
	return out
}

func bucketByEnforcement(cs []constraint.Constraint) map[constraint.Enforcement][]constraint.Constraint {
	buckets := make(map[constraint.Enforcement][]constraint.Constraint)
	for _, c := range cs {
		buckets[c.Enforcement] = append(buckets[c.Enforcement], c)
	}
	return buckets
}

// maxPriority returns the highest member priority as the IR-level
// priority (critical=3, …, absent=0).
func maxPriority(cs []constraint.Constraint) uint32 {
	var max constraint.Priority
	for _, c := range cs {
		if c.Priority > max {
			max = c.Priority
		}
	}
	return uint32(max)
}
