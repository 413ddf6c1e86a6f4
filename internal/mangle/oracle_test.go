package mangle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ananke/internal/braid"
	"ananke/internal/constraint"
)

func TestOracle_ResolvePrefersHigherSeverity(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	a := constraint.Constraint{ID: 1, Severity: constraint.SeverityError}
	b := constraint.Constraint{ID: 2, Severity: constraint.SeverityHint}

	decision, err := o.Resolve(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, braid.DecisionDisableB, decision)
}

func TestOracle_ResolveTieDeclines(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	a := constraint.Constraint{ID: 1, Severity: constraint.SeverityWarning}
	b := constraint.Constraint{ID: 2, Severity: constraint.SeverityWarning}

	_, err = o.Resolve(context.Background(), a, b)
	assert.Error(t, err)
}

func TestOracle_AnalyzeIsNoop(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	cs, err := o.Analyze(context.Background(), "package main", "go")
	require.NoError(t, err)
	assert.Nil(t, cs)
}
