package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoArguments(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arguments")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)
	assert.NoError(t, err)
}

func TestRun_UnknownSource(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), []string{"concert", "--sources", "craigslist"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "craigslist")
}
