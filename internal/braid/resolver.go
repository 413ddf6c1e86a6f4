package braid

import (
	"context"

	"ananke/internal/constraint"
)

// Decision is a conflict-resolver oracle's verdict on a tied conflict.
type Decision string

const (
	DecisionDisableA Decision = "disable_a"
	DecisionDisableB Decision = "disable_b"
	DecisionMerge    Decision = "merge"
	DecisionModifyA  Decision = "modify_a"
	DecisionModifyB  Decision = "modify_b"
)

// ConflictResolver is consulted only when two conflicting constraints tie
// on both priority and confidence. It is a narrow capability interface,
// not a bound vendor SDK; internal/mangle provides a Datalog-backed
// implementation, but Braid itself never assumes one is installed.
type ConflictResolver interface {
	Resolve(ctx context.Context, a, b constraint.Constraint) (Decision, error)
}

// NopResolver always declines, forcing Braid's rule-4 fallback
// (earlier created_at wins).
type NopResolver struct{}

func (NopResolver) Resolve(context.Context, constraint.Constraint, constraint.Constraint) (Decision, error) {
	return "", errNoResolver
}

var errNoResolver = resolverError("no conflict resolver installed")

type resolverError string

func (e resolverError) Error() string { return string(e) }
