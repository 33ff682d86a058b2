package auth

import "time"

const testSecret = "test-secret-that-is-long-enough-for-testing"

// newTestJWTService creates a service with a fixed clock.
func newTestJWTService(secret string, lifetime time.Duration, now func() time.Time) *hmacJWTService {
	svc, err := newHMACJWTService(secret, lifetime, 0, now)
	if err != nil {
		// ALLOW-PANIC
		panic(err)
	}
	return svc
}
