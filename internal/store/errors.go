package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by every store implementation. Callers match them
// with errors.Is; the entity-specific ones also match their generic parent.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound is returned for an unknown user id or email.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrPostNotFound is returned for an unknown post id.
	ErrPostNotFound = fmt.Errorf("%w: post", ErrNotFound)

	// ErrEmailOrUsernameExists is returned when registration hits either
	// unique constraint of the users table.
	ErrEmailOrUsernameExists = fmt.Errorf("%w: email or username", ErrDuplicate)
)

// IsNotFoundError reports whether err is any of the not-found sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError describes a failed operation on one entity. It matches both
// its Kind sentinel and its cause.
type StoreError struct {
	Entity string // "user" or "post"
	Op     string // "create", "update", ...
	Kind   error  // one of the sentinels above
	Err    error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Entity, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, op string, kind, err error) *StoreError {
	return &StoreError{Entity: entity, Op: op, Kind: kind, Err: err}
}

// InvalidEntity reports input rejected before it reached the database. The
// result matches ErrInvalidEntity and the validation error.
func InvalidEntity(entity, op string, cause error) error {
	return NewStoreError(entity, op, ErrInvalidEntity, cause)
}
