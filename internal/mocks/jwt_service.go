package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/quill-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, identity auth.Identity) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default response values
	Token  string
	Claims *auth.Claims
	Err    error

	mu             sync.Mutex
	GeneratedFor   []auth.Identity
	ValidatedToken []string
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService
func (m *MockJWTService) GenerateToken(ctx context.Context, identity auth.Identity) (string, error) {
	m.mu.Lock()
	m.GeneratedFor = append(m.GeneratedFor, identity)
	m.mu.Unlock()

	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}
	return m.Token, m.Err
}

// ValidateToken implements auth.JWTService
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	m.mu.Lock()
	m.ValidatedToken = append(m.ValidatedToken, token)
	m.mu.Unlock()

	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return m.Claims, m.Err
}
