package session

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultTTL is the session lifetime used unless WithTTL overrides it.
	DefaultTTL = 24 * time.Hour

	defaultUsersTable = "users"
	defaultRole       = "admin"
)

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime. A session issued at T expires exactly
// at T+ttl.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger configures structured logging. Logging is discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests that need exact
// expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithUsersTable sets the table queried for credentials. Default "users".
func WithUsersTable(table string) Option {
	return func(m *Manager) {
		if table != "" {
			m.usersTable = table
		}
	}
}

// WithDefaultRole sets the role assigned to registrations that do not specify
// one. Default "admin".
func WithDefaultRole(role string) Option {
	return func(m *Manager) {
		if role != "" {
			m.role = role
		}
	}
}

// WithBcryptCost sets the bcrypt cost used when hashing registration secrets.
// Lower costs are useful in tests.
func WithBcryptCost(cost int) Option {
	return func(m *Manager) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			m.cost = cost
		}
	}
}
