package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// MockUserStore implements store.UserStore. Without function overrides it
// keeps users in memory and enforces email/username uniqueness.
type MockUserStore struct {
	CreateFn                func(ctx context.Context, user *domain.User) error
	GetByEmailFn            func(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrUsernameFn func(ctx context.Context, email, username string) (*domain.User, error)

	mu     sync.Mutex
	users  []*domain.User
	nextID int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an in-memory store holding the given users.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{}
	for _, u := range users {
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
		m.users = append(m.users, u)
	}
	return m
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return store.InvalidEntity("user", "create", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return store.ErrEmailOrUsernameExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

// GetByID returns a stored user. MockPostService resolves post owners with it.
func (m *MockUserStore) GetByID(id int64) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

// GetByEmail implements store.UserStore
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

// FindByEmailOrUsername implements store.UserStore
func (m *MockUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	if m.FindByEmailOrUsernameFn != nil {
		return m.FindByEmailOrUsernameFn(ctx, email, username)
	}
	return m.find(func(u *domain.User) bool { return u.Email == email || u.Username == username })
}

// WithTx implements store.UserStore
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func (m *MockUserStore) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}
