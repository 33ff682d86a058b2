package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
)

// UserStore persists registered authors. Lookups that find nothing return
// ErrUserNotFound.
type UserStore interface {
	// Create inserts user and sets its ID and timestamps. A taken email or
	// username gives ErrEmailOrUsernameExists; a user failing Validate gives
	// ErrInvalidEntity.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail matches the email exactly.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByEmailOrUsername returns a user holding either value, which is
	// how registration detects conflicts on both fields with one query.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)

	// WithTx returns a store bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
