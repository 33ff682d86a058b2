package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-migrate", "status", "-verbose"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{migrate: "status", verbose: true}, opts)

	opts, err = parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{}, opts)

	_, err = parseFlags([]string{"-help"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = parseFlags([]string{"extra"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-unknown"}, io.Discard)
	assert.Error(t, err)
}

func TestRunFailsWithoutConfiguration(t *testing.T) {
	t.Setenv("QUILL_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("QUILL_AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	err := run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
