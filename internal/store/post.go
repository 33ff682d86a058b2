package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
)

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post and fills in its ID and timestamps.
	// Returns ErrInvalidEntity if the post is invalid or its owner does not exist.
	Create(ctx context.Context, post *domain.Post) error

	// List returns one page of posts joined with their owners, and the total
	// number of posts.
	List(ctx context.Context, query domain.PostQuery) ([]*domain.PostWithOwner, int, error)

	// GetByID retrieves a post and its owner.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.PostWithOwner, error)

	// GetByIDForUpdate retrieves a post and locks its row until the surrounding
	// transaction ends. Only meaningful on a store returned by WithTx.
	// Returns ErrPostNotFound if the post does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Post, error)

	// Update applies the non-nil fields of patch and returns the updated post.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error)

	// Delete removes a post.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new PostStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PostStore

	// DB returns the underlying database connection.
	DB() *sql.DB
}
