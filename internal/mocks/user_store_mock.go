package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a store.UserStore driven by testify/mock
// expectations, for tests that assert exact calls.
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userResult(args)
}

// FindByEmailOrUsername is a mock implementation of store.UserStore.FindByEmailOrUsername
func (m *TestifyMockUserStore) FindByEmailOrUsername(
	ctx context.Context,
	email, username string,
) (*domain.User, error) {
	args := m.Called(ctx, email, username)
	return userResult(args)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func userResult(args mock.Arguments) (*domain.User, error) {
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
