package ananke

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExtractAndCompile_EmptySource(t *testing.T) {
	c := NewClient()
	result, err := c.ExtractAndCompile(context.Background(), "", "go")
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func TestClient_ExtractAndCompile_NamingViolation(t *testing.T) {
	c := NewClient()
	src := "package main\n\nfunc Bad_Name() {}\n"
	result, err := c.ExtractAndCompile(context.Background(), src, "go")
	require.NoError(t, err)
	require.NotNil(t, result.Grammar)
	assert.Greater(t, result.Priority, uint32(0))
}
