package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ananke/internal/constraint"
)

func validConstraint() constraint.Constraint {
	return constraint.Constraint{
		ID:          1,
		Name:        "use_camelCase",
		Description: "Functions must use camelCase naming",
		Kind:        constraint.KindSyntactic,
		Source:      constraint.AstPattern{},
		Enforcement: constraint.EnforcementSyntactic,
		Priority:    constraint.PriorityHigh,
		Severity:    constraint.SeverityError,
		Confidence:  1.0,
	}
}

func TestValidAcceptsWellFormedConstraint(t *testing.T) {
	assert.True(t, Valid(validConstraint()))
	assert.Empty(t, Check(validConstraint()))
}

func TestCheckRejectsEmptyName(t *testing.T) {
	c := validConstraint()
	c.Name = ""
	problems := Check(c)
	assert.False(t, Valid(c))
	assert.Contains(t, problems, Problem{"name", "must not be empty"})
}

func TestCheckRejectsEmptyDescription(t *testing.T) {
	c := validConstraint()
	c.Description = ""
	assert.False(t, Valid(c))
}

func TestCheckRejectsOutOfRangeConfidence(t *testing.T) {
	for _, bad := range []float64{-0.1, 1.1, 2.0} {
		c := validConstraint()
		c.Confidence = bad
		assert.False(t, Valid(c), "confidence %v should be invalid", bad)
	}
}

func TestCheckRejectsMismatchedEnforcement(t *testing.T) {
	c := validConstraint()
	c.Kind = constraint.KindSyntactic
	c.Enforcement = constraint.EnforcementSecurity
	assert.False(t, Valid(c))
}

func TestCheckAllowsBothTypeSafetyBranches(t *testing.T) {
	c := validConstraint()
	c.Kind = constraint.KindTypeSafety
	c.Source = constraint.TypeSystem{}

	c.Enforcement = constraint.EnforcementStructural
	assert.True(t, Valid(c))

	c.Enforcement = constraint.EnforcementSemantic
	assert.True(t, Valid(c))
}

func TestRemoveInvalidKeepsOnlyValidAndNeverDropsValid(t *testing.T) {
	set := constraint.NewConstraintSet("mixed")
	valid := validConstraint()
	invalid := validConstraint()
	invalid.Name = ""
	set.Add(valid).Add(invalid)

	removed := RemoveInvalid(set)

	assert.Equal(t, 1, removed)
	assert.Len(t, set.Constraints, 1)
	assert.True(t, Valid(set.Constraints[0]))
}
