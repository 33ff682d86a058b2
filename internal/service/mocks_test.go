package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPostStore mocks the store.PostStore interface
type MockPostStore struct {
	mock.Mock
	db *sql.DB
}

func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostStore) List(ctx context.Context, query domain.PostQuery) ([]*domain.PostWithOwner, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.PostWithOwner), args.Int(1), args.Error(2)
}

func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.PostWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostWithOwner), args.Error(1)
}

func (m *MockPostStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations span the transaction.
func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}

func (m *MockPostStore) DB() *sql.DB {
	return m.db
}
