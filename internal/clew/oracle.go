package clew

import (
	"context"

	"ananke/internal/constraint"
)

// SemanticOracle is the optional LLM-analysis capability Clew consults
// after its deterministic recognizers run. It is a narrow capability
// interface, not a bound vendor SDK: keeping genai/openai-go out of
// internal/clew means the core never depends on a specific model
// provider.
type SemanticOracle interface {
	// Analyze proposes additional constraints for src. Implementations must
	// respect ctx's deadline; Clew treats a context error identically to a
	// timeout, downgrading to no additional data rather than failing
	// extraction outright.
	Analyze(ctx context.Context, src string, lang string) ([]constraint.Constraint, error)
}

// NopOracle is the default SemanticOracle: it proposes nothing. Clew's
// extraction pipeline is fully deterministic without an oracle configured.
type NopOracle struct{}

func (NopOracle) Analyze(context.Context, string, string) ([]constraint.Constraint, error) {
	return nil, nil
}
