// Package apperr defines the typed failures that cross the service/API boundary.
//
// Every failure that should reach a client is an *Error carrying a Kind (which
// fixes the HTTP status and the public error name), a client-safe message and an
// operational flag. Operational errors are sent to clients verbatim; anything
// else is masked as an internal server error before serialization.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is an unexpected failure. It is the zero value so that an
	// unclassified error is never mistaken for a client error.
	KindInternal Kind = iota
	// KindBadRequest is malformed or invalid input.
	KindBadRequest
	// KindUnauthorized is a missing, invalid or expired credential, or an
	// ownership violation on a mutating operation.
	KindUnauthorized
	// KindNotFound is a referenced entity or route that does not exist.
	KindNotFound
	// KindConflict is a uniqueness violation.
	KindConflict
)

// StatusCode returns the HTTP status code for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Name returns the public error name serialized in error responses.
func (k Kind) Name() string {
	switch k {
	case KindBadRequest:
		return "BadRequestError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	default:
		return "InternalServerError"
	}
}

// Error is a classified application failure.
type Error struct {
	Kind        Kind
	Message     string // safe to expose to clients
	Operational bool   // anticipated failure with a defined HTTP mapping
	Err         error  // underlying cause, never exposed to clients
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Name(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Name(), e.Message)
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code of the error.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// New creates an operational error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:        kind,
		Message:     message,
		Operational: true,
		Err:         cause,
	}
}

// BadRequest creates an operational 400 error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message, nil)
}

// Unauthorized creates an operational 401 error.
func Unauthorized(message string, cause error) *Error {
	return New(KindUnauthorized, message, cause)
}

// NotFound creates an operational 404 error.
func NotFound(message string, cause error) *Error {
	return New(KindNotFound, message, cause)
}

// Conflict creates an operational 409 error.
func Conflict(message string, cause error) *Error {
	return New(KindConflict, message, cause)
}

// Internal creates an operational 500 error. The message is still sent to the
// client, so it must not contain internal detail.
func Internal(message string, cause error) *Error {
	return New(KindInternal, message, cause)
}

// Unexpected wraps a failure that has no defined client mapping. It is never
// operational: the API layer masks it and the process boundary treats it as a
// defect.
func Unexpected(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     cause,
	}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsOperational reports whether err carries an operational *Error.
func IsOperational(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Operational
}

// FromPanic converts a recovered panic value into an error. Values that are not
// errors are formatted into a non-operational failure.
func FromPanic(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return Unexpected(fmt.Errorf("panic: %v", v))
}
