package mocks

import "github.com/phrazzld/quill-api/internal/service/auth"

// HashPrefix is prepended by MockPasswordHasher's default Hash.
const HashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hash, password string) (bool, error)
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return HashPrefix + password, nil
}

// Compare implements auth.PasswordHasher
func (m *MockPasswordHasher) Compare(hash, password string) (bool, error) {
	if m.CompareFn != nil {
		return m.CompareFn(hash, password)
	}
	return hash == HashPrefix+password, nil
}
