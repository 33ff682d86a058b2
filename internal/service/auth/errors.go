package auth

import "errors"

// Token errors. ValidateToken wraps one of the first two in an unauthorized
// *apperr.Error; the middleware uses ErrMissingToken for absent headers.
var (
	ErrInvalidToken = errors.New("invalid authentication token")
	ErrExpiredToken = errors.New("authentication token has expired")
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWeakSecret rejects HS256 keys shorter than MinSecretLength.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)

// invalidTokenMessage is the client-facing message of every validation failure.
const invalidTokenMessage = "Invalid token"
