// Package ananke is the stable Go entry point to the constraint-compiler
// pipeline: ExtractFromCode (Clew) and Compile (Braid), composed into one
// client a host process constructs once and reuses across calls.
package ananke

import (
	"context"

	"go.uber.org/zap"

	"ananke/internal/braid"
	"ananke/internal/clew"
	"ananke/internal/constraint"
	"ananke/internal/ir"
)

// Client owns a Clew extraction engine and a Braid compiler configured
// with the same logger and oracle set.
type Client struct {
	clew  *clew.Engine
	braid *braid.Compiler
}

// Option configures a new Client.
type Option func(*clientConfig)

type clientConfig struct {
	logger            *zap.Logger
	semanticOracle    clew.SemanticOracle
	conflictResolver  braid.ConflictResolver
	cacheSize         int
	cacheSizeSet      bool
}

// WithLogger injects a structured logger shared by extraction and
// compilation.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithSemanticOracle attaches Clew's optional post-recognition oracle.
func WithSemanticOracle(o clew.SemanticOracle) Option {
	return func(c *clientConfig) { c.semanticOracle = o }
}

// WithConflictResolver attaches Braid's optional tie-break oracle.
func WithConflictResolver(r braid.ConflictResolver) Option {
	return func(c *clientConfig) { c.conflictResolver = r }
}

// WithCacheSize overrides Clew's fingerprint cache capacity.
func WithCacheSize(n int) Option {
	return func(c *clientConfig) { c.cacheSize = n; c.cacheSizeSet = true }
}

// NewClient builds a Client ready for ExtractFromCode and Compile calls.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var clewOpts []clew.Option
	if cfg.logger != nil {
		clewOpts = append(clewOpts, clew.WithLogger(cfg.logger))
	}
	if cfg.semanticOracle != nil {
		clewOpts = append(clewOpts, clew.WithSemanticOracle(cfg.semanticOracle))
	}
	if cfg.cacheSizeSet {
		clewOpts = append(clewOpts, clew.WithCacheSize(cfg.cacheSize))
	}

	var braidOpts []braid.Option
	if cfg.logger != nil {
		braidOpts = append(braidOpts, braid.WithLogger(cfg.logger))
	}

	c := &Client{
		clew:  clew.New(clewOpts...),
		braid: braid.New(braidOpts...),
	}
	if cfg.conflictResolver != nil {
		c.braid.SetConflictResolver(cfg.conflictResolver)
	}
	return c
}

// ExtractFromCode runs Clew over src, returning the discovered
// ConstraintSet.
func (c *Client) ExtractFromCode(ctx context.Context, src, lang string) (*constraint.ConstraintSet, error) {
	return c.clew.ExtractFromCode(ctx, src, lang)
}

// Compile runs Braid over set, returning the compiled ConstraintIR.
func (c *Client) Compile(ctx context.Context, set *constraint.ConstraintSet) (*ir.ConstraintIR, error) {
	return c.braid.Compile(ctx, set)
}

// ExtractAndCompile composes ExtractFromCode and Compile, the common
// end-to-end call a host makes when it only has source text.
func (c *Client) ExtractAndCompile(ctx context.Context, src, lang string) (*ir.ConstraintIR, error) {
	set, err := c.ExtractFromCode(ctx, src, lang)
	if err != nil {
		return nil, err
	}
	return c.Compile(ctx, set)
}

// SetSemanticOracle swaps Clew's oracle after construction.
func (c *Client) SetSemanticOracle(o clew.SemanticOracle) { c.clew.SetSemanticOracle(o) }

// SetConflictResolver swaps Braid's oracle after construction.
func (c *Client) SetConflictResolver(r braid.ConflictResolver) { c.braid.SetConflictResolver(r) }

// Watch starts invalidating the extraction cache whenever one of paths
// changes on disk, for long-lived hosts that call ExtractFromCode
// repeatedly against files a user is actively editing. Callers must Close
// the returned Watcher when done.
func (c *Client) Watch(paths ...string) (*clew.Watcher, error) {
	return clew.NewWatcher(c.clew, paths...)
}
