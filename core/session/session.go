package session

import "time"

// Session is the record proving a user is currently authenticated. It carries
// identity and display attributes plus an absolute expiry; it never carries
// the secret or its hash.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is expired at the given instant.
// The boundary is inclusive: a session is expired exactly at its expiry time.
func (s Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsExpired reports whether the session is expired now.
func (s Session) IsExpired() bool {
	return s.ExpiredAt(time.Now())
}

// Status is the authentication state reported to OnChange listeners.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticated
)

func (s Status) String() string {
	if s == StatusAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}
