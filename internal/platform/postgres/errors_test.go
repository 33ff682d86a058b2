package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantRaw bool
	}{
		{name: "nil", err: nil},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: uniqueViolationCode}, wantIs: store.ErrDuplicate},
		{
			name:   "foreign key",
			err:    &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "posts_user_id_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{name: "check", err: &pgconn.PgError{Code: checkViolationCode}, wantIs: store.ErrInvalidEntity},
		{name: "not null", err: &pgconn.PgError{Code: notNullViolationCode}, wantIs: store.ErrInvalidEntity},
		{name: "wrapped unique", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode}), wantIs: store.ErrDuplicate},
		{name: "unmapped", err: plain, wantRaw: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			switch {
			case tt.err == nil:
				assert.NoError(t, got)
			case tt.wantRaw:
				assert.Same(t, tt.err, got)
			default:
				assert.ErrorIs(t, got, tt.wantIs)
			}
		})
	}
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrPostNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrPostNotFound), store.ErrPostNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), nil))
}
