package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"wrapped ErrPostNotFound", fmt.Errorf("failed to get post: %w", ErrPostNotFound), true},
		{"duplicate", ErrEmailOrUsernameExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestSentinelHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrEmailOrUsernameExists, ErrDuplicate)
	assert.ErrorIs(t, ErrPostNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrPostNotFound, ErrUserNotFound)
}

func TestStoreError(t *testing.T) {
	cause := errors.New("title cannot be empty")
	err := InvalidEntity("post", "create", cause)

	assert.Equal(t, "create post: invalid entity: title cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrInvalidEntity)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	bare := NewStoreError("user", "get", ErrUserNotFound, nil)
	assert.Equal(t, "get user: entity not found: user", bare.Error())
	assert.ErrorIs(t, bare, ErrNotFound)
}
