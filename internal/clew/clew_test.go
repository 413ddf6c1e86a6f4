package clew

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromCode_EmptyInput(t *testing.T) {
	e := New()
	set, err := e.ExtractFromCode(context.Background(), "", "typescript")
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestExtractFromCode_UnsupportedLanguage(t *testing.T) {
	e := New()
	_, err := e.ExtractFromCode(context.Background(), "x", "cobol")
	assert.Error(t, err)
}

func TestExtractFromCode_NamingViolation(t *testing.T) {
	e := New()
	src := "package main\n\nfunc Do_Thing() {}\n"
	set, err := e.ExtractFromCode(context.Background(), src, "go")
	require.NoError(t, err)

	var found bool
	for _, c := range set.Constraints {
		if c.Name == "use_camelCase" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtractFromCode_Deterministic(t *testing.T) {
	e := New()
	src := "package main\n\nfunc Do_Thing() {}\nfunc another_bad_one() {}\n"

	first, err := e.ExtractFromCode(context.Background(), src, "go")
	require.NoError(t, err)
	second, err := e.ExtractFromCode(context.Background(), src, "go")
	require.NoError(t, err)

	assert.Equal(t, first.Constraints, second.Constraints)
}

func TestExtractFromCode_TestMining(t *testing.T) {
	e := New()
	src := "def test_foo():\n    assertIn(x, y)\n    assertTrue(z)\n"
	set, err := e.ExtractFromCode(context.Background(), src, "python")
	require.NoError(t, err)

	var names []string
	for _, c := range set.Constraints {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "test_mining_unknown_membership")
	assert.Contains(t, names, "test_mining_unknown_truthiness")
}
