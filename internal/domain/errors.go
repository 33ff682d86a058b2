package domain

import "errors"

// Errors that are not tied to a single field. Field-level failures such as
// ErrEmptyTitle are declared next to their entity.
var (
	// ErrValidation wraps a rejected listing query or post patch.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID marks a post or user id that is not a positive integer.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized marks a change to a post by someone other than its author.
	ErrUnauthorized = errors.New("unauthorized operation")
)
