package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveID_Deterministic(t *testing.T) {
	a := DeriveID(string(KindSyntactic), "use_camelCase", "main.go", 10, "go")
	b := DeriveID(string(KindSyntactic), "use_camelCase", "main.go", 10, "go")
	assert.Equal(t, a, b)
}

func TestDeriveID_DiffersOnAnyField(t *testing.T) {
	base := DeriveID(string(KindSyntactic), "use_camelCase", "main.go", 10, "go")
	assert.NotEqual(t, base, DeriveID(string(KindSemantic), "use_camelCase", "main.go", 10, "go"))
	assert.NotEqual(t, base, DeriveID(string(KindSyntactic), "use_snake_case", "main.go", 10, "go"))
	assert.NotEqual(t, base, DeriveID(string(KindSyntactic), "use_camelCase", "other.go", 10, "go"))
	assert.NotEqual(t, base, DeriveID(string(KindSyntactic), "use_camelCase", "main.go", 11, "go"))
}

func TestCompatibleEnforcements(t *testing.T) {
	assert.True(t, EnforcementCompatible(KindTypeSafety, EnforcementStructural))
	assert.True(t, EnforcementCompatible(KindTypeSafety, EnforcementSemantic))
	assert.False(t, EnforcementCompatible(KindTypeSafety, EnforcementSyntactic))
	assert.False(t, EnforcementCompatible(KindSyntactic, EnforcementSemantic))
}

func TestConstraintSet_MergePreservesDuplicates(t *testing.T) {
	a := NewConstraintSet("a").Add(Constraint{ID: 1, Name: "x"})
	b := NewConstraintSet("b").Add(Constraint{ID: 1, Name: "x"})
	a.Merge(b)
	assert.Equal(t, 2, a.Len())
}

func TestPriority_StringRoundTrip(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		parsed, ok := ParsePriority(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, parsed)
	}
}
