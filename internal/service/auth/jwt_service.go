// Package auth implements the credential rules, password hashing and JWT
// issuance/validation used by the API.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given identity.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Any failure (expired, invalid signature, malformed) is an unauthorized
	// *apperr.Error wrapping ErrExpiredToken or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Identity is the subject a token is issued for.
type Identity struct {
	UserID   int64
	Email    string
	Username string
}

// Claims represents the decoded contents of a valid token.
type Claims struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity returns the subject of the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Username: c.Username}
}
