package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

// SeedUser is a demo account inserted by Seed.
type SeedUser struct {
	Email    string
	Username string
	Password string
}

// DefaultSeedUsers are the demo accounts. Their passwords predate the strength
// rules, so they can log in but could not register.
var DefaultSeedUsers = []SeedUser{
	{Email: "test@test.com", Username: "test", Password: "test"},
	{Email: "test2@test.com", Username: "test2", Password: "test2"},
}

// DefaultSeedPostCount is the number of demo posts.
const DefaultSeedPostCount = 30

// Hasher hashes seed passwords.
type Hasher interface {
	Hash(password string) (string, error)
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	UserIDs      []int64
	PostsCreated int
}

// Seed inserts the demo users and, when the posts table is empty, the demo
// posts: "post{i}" / "post {i} content", the first 14 owned by the first user
// and the rest by the second. Running it again changes nothing.
func Seed(ctx context.Context, db *sql.DB, hasher Hasher) (*SeedResult, error) {
	log := logger.FromContext(ctx)
	result := &SeedResult{}

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		now := time.Now().UTC()

		for _, u := range DefaultSeedUsers {
			hash, err := hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", u.Username, err)
			}

			var id int64
			err = tx.QueryRowContext(ctx, `
				INSERT INTO users (email, username, password, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $4)
				ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
				RETURNING id
			`, u.Email, u.Username, hash, now).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Username, MapError(err))
			}
			result.UserIDs = append(result.UserIDs, id)
		}

		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&existing); err != nil {
			return fmt.Errorf("failed to count posts: %w", err)
		}
		if existing > 0 {
			log.Info("posts already present, skipping post seed", slog.Int("count", existing))
			return nil
		}

		for i := 1; i <= DefaultSeedPostCount; i++ {
			owner := result.UserIDs[0]
			if i >= 15 {
				owner = result.UserIDs[1]
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO posts (title, content, user_id, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $4)
			`, fmt.Sprintf("post%d", i), fmt.Sprintf("post %d content", i), owner, now)
			if err != nil {
				return fmt.Errorf("failed to seed post %d: %w", i, MapError(err))
			}
			result.PostsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("database seeded",
		slog.Int("users", len(result.UserIDs)),
		slog.Int("posts_created", result.PostsCreated))
	return result, nil
}
