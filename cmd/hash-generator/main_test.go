package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRunHashesArguments(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"Str0ng!pass", "weak"}, strings.NewReader(""), &out, bcrypt.MinCost))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[0]), []byte("Str0ng!pass")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[1]), []byte("weak")))
	assert.Contains(t, lines[2], "warning")
}

func TestRunReadsStdin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader("Str0ng!pass\n\n"), &out, bcrypt.MinCost))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Str0ng!pass")))
}
