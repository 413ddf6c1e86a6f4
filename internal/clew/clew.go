// Package clew implements the extraction half of the Ananke pipeline:
// turning source text into a ConstraintSet via a deterministic dispatch
// table of per-language recognizers, optionally enriched by a semantic
// oracle.
//
// Grounded on the teacher's internal/world/ast_treesitter.go (tree-sitter
// parser lifecycle and node-walking idiom) and internal/tools/codedom
// (structural pattern matching over a parsed tree), generalized from "build
// a code-understanding index" to "recognize constraint-shaped patterns".
package clew

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ananke/internal/constraint"
	"ananke/internal/logging"
	"ananke/internal/obslog"
	"ananke/internal/validate"
)

// Recognizer inspects src and proposes constraints it found. Recognizers
// must be deterministic: given the same src, they must return the same
// sequence every time, so none may consult wall clock time, randomness,
// or external state when deciding what to emit.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error)
}

// Engine extracts constraints from source code using a fixed per-language
// dispatch table, an optional SemanticOracle, and a fingerprint cache.
type Engine struct {
	logger      *zap.Logger
	oracle      SemanticOracle
	cache       *fingerprintCache
	dispatch    map[string][]Recognizer
	diagnostics obslog.Events
}

// Option configures a new Engine.
type Option func(*Engine)

// WithLogger injects a structured logger (nil-safe, see internal/logging).
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.NopIfNil(l) }
}

// WithSemanticOracle attaches an oracle consulted after deterministic
// recognizers run.
func WithSemanticOracle(o SemanticOracle) Option {
	return func(e *Engine) {
		if o != nil {
			e.oracle = o
		}
	}
}

// WithCacheSize overrides the default fingerprint-cache capacity (0
// disables caching).
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cache = newFingerprintCache(n) }
}

// New builds an Engine with the default dispatch table (defaultDispatch).
func New(opts ...Option) *Engine {
	e := &Engine{
		oracle:   NopOracle{},
		cache:    newFingerprintCache(defaultCacheSize),
		dispatch: defaultDispatch(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NopIfNil(e.logger)
	return e
}

// SetSemanticOracle swaps the oracle after construction.
func (e *Engine) SetSemanticOracle(o SemanticOracle) {
	if o == nil {
		o = NopOracle{}
	}
	e.oracle = o
}

// Diagnostics returns the accumulated partial-quality events recorded by
// the most recent ExtractFromCode calls.
func (e *Engine) Diagnostics() obslog.Events { return e.diagnostics }

// ExtractFromCode runs every recognizer registered for lang over src,
// appends any oracle-proposed constraints, validates and filters the
// result, and returns a deterministically ordered ConstraintSet. Empty
// src short-circuits to an empty set without touching the cache or
// dispatch table.
func (e *Engine) ExtractFromCode(ctx context.Context, src, lang string) (*constraint.ConstraintSet, error) {
	set := constraint.NewConstraintSet(lang)
	if src == "" {
		return set, nil
	}

	if cached, ok := e.cache.get(src, lang); ok {
		return cached, nil
	}

	recognizers, ok := e.dispatch[lang]
	if !ok {
		return nil, fmt.Errorf("clew: unsupported language %q", lang)
	}

	// Recognizers run concurrently — only the final output order matters,
	// which sortDeterministic restores below — using errgroup the way the
	// teacher bounds concurrent work elsewhere in the codebase.
	found := make([][]constraint.Constraint, len(recognizers))
	recognizerErrs := make([]error, len(recognizers))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range recognizers {
		i, r := i, r
		g.Go(func() error {
			cs, err := r.Recognize(gctx, src, lang, "")
			if err != nil {
				recognizerErrs[i] = fmt.Errorf("%s: %w", r.Name(), err)
				return nil
			}
			found[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, err := range recognizerErrs {
		if err != nil {
			e.diagnostics.Record(time.Now(), obslog.KindOracleError,
				fmt.Sprintf("recognizer failed: %v", err), 0, 0)
			continue
		}
		set.Constraints = append(set.Constraints, found[i]...)
	}

	if e.oracle != nil {
		proposed, err := e.oracle.Analyze(ctx, src, lang)
		if err != nil {
			e.diagnostics.Record(time.Now(), obslog.KindOracleTimeout,
				fmt.Sprintf("semantic oracle failed: %v", err), 0, 0)
		} else {
			set.Constraints = append(set.Constraints, proposed...)
		}
	}

	dropped := validate.RemoveInvalid(set)
	if dropped > 0 {
		e.diagnostics.Record(time.Now(), obslog.KindConstraintDropped,
			fmt.Sprintf("%d constraint(s) failed validation", dropped), 0, 0)
	}

	sortDeterministic(set)
	e.cache.put(src, lang, set)
	return set, nil
}

// sortDeterministic imposes the pipeline's tie-break order (priority
// desc, confidence desc, id asc), keeping recognizer output order stable
// for everything already equal under that order.
func sortDeterministic(set *constraint.ConstraintSet) {
	cs := set.Constraints
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Priority != cs[j].Priority {
			return cs[i].Priority > cs[j].Priority
		}
		if cs[i].Confidence != cs[j].Confidence {
			return cs[i].Confidence > cs[j].Confidence
		}
		return cs[i].ID < cs[j].ID
	})
}
