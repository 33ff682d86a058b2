package service

import (
	"fmt"

	"github.com/phrazzld/quill-api/internal/domain"
)

// ErrNotOwned indicates a post is owned by a different user than the one
// making the request. It wraps domain.ErrUnauthorized.
var ErrNotOwned = fmt.Errorf("%w: post is owned by another user", domain.ErrUnauthorized)

// ServiceError wraps unexpected failures with the service and operation that
// produced them. It is never operational, so the API layer masks it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}
