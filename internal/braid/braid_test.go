package braid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ananke/internal/constraint"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCompile_EmptyInput(t *testing.T) {
	c := New(WithClock(fixedClock(time.Unix(0, 0))))
	ir, err := c.Compile(context.Background(), constraint.NewConstraintSet("empty"))
	require.NoError(t, err)
	assert.True(t, ir.IsEmpty())
	assert.Equal(t, uint32(0), ir.Priority)
}

func TestCompile_SingleSyntacticConstraint(t *testing.T) {
	c := New(WithClock(fixedClock(time.Unix(0, 0))))
	set := constraint.NewConstraintSet("s2").Add(constraint.Constraint{
		ID:          1,
		Name:        "use_camelCase",
		Description: "Functions must use camelCase naming",
		Kind:        constraint.KindSyntactic,
		Source:      constraint.AstPattern{},
		Enforcement: constraint.EnforcementSyntactic,
		Severity:    constraint.SeverityError,
		Priority:    constraint.PriorityHigh,
		Confidence:  1.0,
	})

	result, err := c.Compile(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, uint32(constraint.PriorityHigh), result.Priority)
	require.NotNil(t, result.Grammar)
	assert.Equal(t, "program", result.Grammar.StartSymbol)
}

func TestCompile_AllInvalidReturnsEmptyValidSet(t *testing.T) {
	c := New(WithClock(fixedClock(time.Unix(0, 0))))
	set := constraint.NewConstraintSet("bad").Add(constraint.Constraint{Name: "", Description: ""})

	_, err := c.Compile(context.Background(), set)
	assert.ErrorIs(t, err, ErrEmptyValidSet)
}

func TestCompile_ConflictResolvedByPriority(t *testing.T) {
	c := New(WithClock(fixedClock(time.Unix(0, 0))))
	set := constraint.NewConstraintSet("conflict")
	set.Add(constraint.Constraint{
		ID: 1, Name: "max_line_length", Description: "low prio",
		Kind: constraint.KindOperational, Source: constraint.Telemetry{Metric: "line_length", Threshold: 80},
		Enforcement: constraint.EnforcementPerformance, Severity: constraint.SeverityWarning,
		Priority: constraint.PriorityLow, Confidence: 0.5,
	})
	set.Add(constraint.Constraint{
		ID: 2, Name: "max_line_length", Description: "high prio",
		Kind: constraint.KindOperational, Source: constraint.Telemetry{Metric: "line_length", Threshold: 120},
		Enforcement: constraint.EnforcementPerformance, Severity: constraint.SeverityError,
		Priority: constraint.PriorityCritical, Confidence: 0.9,
	})

	result, err := c.Compile(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, uint32(constraint.PriorityCritical), result.Priority)
	assert.Len(t, result.Diagnostics.ByKind("conflict_resolved"), 1)
}

func TestCompile_DependencyCycleBroken(t *testing.T) {
	c := New(WithClock(fixedClock(time.Unix(0, 0))))
	set := constraint.NewConstraintSet("cycle")
	set.Add(constraint.Constraint{
		ID: 1, Name: "a", Description: "a", Kind: constraint.KindArchitectural,
		Source: constraint.AstPattern{}, Enforcement: constraint.EnforcementStructural,
		Severity: constraint.SeverityInfo, Priority: constraint.PriorityLow, Confidence: 1.0,
		DependsOn: []uint64{2},
	})
	set.Add(constraint.Constraint{
		ID: 2, Name: "b", Description: "b", Kind: constraint.KindArchitectural,
		Source: constraint.AstPattern{}, Enforcement: constraint.EnforcementStructural,
		Severity: constraint.SeverityInfo, Priority: constraint.PriorityLow, Confidence: 1.0,
		DependsOn: []uint64{1},
	})

	result, err := c.Compile(context.Background(), set)
	require.NoError(t, err)
	found := result.Diagnostics.ByKind("cycle_broken")
	assert.NotEmpty(t, found)
}

func TestCompile_Idempotent(t *testing.T) {
	clock := fixedClock(time.Unix(0, 0))
	set := constraint.NewConstraintSet("idem").Add(constraint.Constraint{
		ID: 1, Name: "use_camelCase", Description: "d", Kind: constraint.KindSyntactic,
		Source: constraint.AstPattern{}, Enforcement: constraint.EnforcementSyntactic,
		Severity: constraint.SeverityError, Priority: constraint.PriorityHigh, Confidence: 1.0,
	})

	first, err := New(WithClock(clock)).Compile(context.Background(), set)
	require.NoError(t, err)
	second, err := New(WithClock(clock)).Compile(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, first.Grammar, second.Grammar)
	assert.Equal(t, first.Priority, second.Priority)
}
