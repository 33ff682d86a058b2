package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

const (
	postColumns = `id, title, content, user_id, created_at, updated_at`

	postWithOwnerColumns = `p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
		u.id, u.email, u.username, u.created_at, u.updated_at`
)

// sortColumns whitelists the ORDER BY expressions; user input never reaches
// the query text directly.
var sortColumns = map[domain.SortField]string{
	domain.SortByID:      "p.id",
	domain.SortByTitle:   "p.title",
	domain.SortByContent: "p.content",
}

var sortDirections = map[domain.SortOrder]string{
	domain.SortAsc:  "ASC",
	domain.SortDesc: "DESC",
}

// PostgresPostStore implements the store.PostStore interface using PostgreSQL.
type PostgresPostStore struct {
	db    store.DBTX
	sqlDB *sql.DB
	now   func() time.Time
}

// NewPostgresPostStore creates a new PostgresPostStore.
func NewPostgresPostStore(db *sql.DB) *PostgresPostStore {
	return &PostgresPostStore{
		db:    db,
		sqlDB: db,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, sqlDB: s.sqlDB, now: s.now}
}

// DB implements store.PostStore.DB
func (s *PostgresPostStore) DB() *sql.DB {
	return s.sqlDB
}

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContext(ctx)

	if err := post.Validate(); err != nil {
		return store.InvalidEntity("post", "create", err)
	}

	query := `
		INSERT INTO posts (title, content, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		post.Title,
		post.Content,
		post.UserID,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if IsForeignKeyViolation(err) {
		log.Warn("post author does not exist", slog.Int64("user_id", post.UserID))
		return store.NewStoreError("post", "create", store.ErrUserNotFound, err)
	}
	if err != nil {
		log.Error("failed to create post",
			slog.Int64("user_id", post.UserID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create post: %w", MapError(err))
	}

	return nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(
	ctx context.Context,
	q domain.PostQuery,
) ([]*domain.PostWithOwner, int, error) {
	log := logger.FromContext(ctx)

	if err := q.Validate(); err != nil {
		return nil, 0, store.InvalidEntity("post", "list", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		log.Error("failed to count posts", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	// Tie-break on id so pages are stable when the sort column has duplicates.
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY %s %s, p.id ASC
		LIMIT $1 OFFSET $2
	`, postWithOwnerColumns, sortColumns[q.SortBy], sortDirections[q.SortOrder])

	rows, err := s.db.QueryContext(ctx, query, q.Limit, q.Offset())
	if err != nil {
		log.Error("failed to list posts",
			slog.Int("page", q.Page),
			slog.Int("limit", q.Limit),
			slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.PostWithOwner, 0, q.Limit)
	for rows.Next() {
		post, err := scanPostWithOwner(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, total, nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.PostWithOwner, error) {
	query := `
		SELECT ` + postWithOwnerColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	post, err := scanPostWithOwner(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		logger.FromContext(ctx).Error("failed to get post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetByIDForUpdate implements store.PostStore.GetByIDForUpdate
func (s *PostgresPostStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 FOR UPDATE`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		logger.FromContext(ctx).Error("failed to lock post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock post: %w", err)
	}
	return post, nil
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(
	ctx context.Context,
	id int64,
	patch domain.PostPatch,
) (*domain.Post, error) {
	if err := patch.Validate(); err != nil {
		return nil, store.InvalidEntity("post", "update", err)
	}

	query := `
		UPDATE posts
		SET title = COALESCE($2, title),
			content = COALESCE($3, content),
			updated_at = $4
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(s.db.QueryRowContext(ctx, query,
		id,
		nullString(patch.Title),
		nullString(patch.Content),
		s.now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		logger.FromContext(ctx).Error("failed to update post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update post: %w", MapError(err))
	}
	return post, nil
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPostWithOwner(row rowScanner) (*domain.PostWithOwner, error) {
	var p domain.PostWithOwner
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.ID, &p.Owner.Email, &p.Owner.Username, &p.Owner.CreatedAt, &p.Owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
