package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Persisted entry names. Every Store implementation writes and reads the two
// entries together: the serialized session and its expiry as epoch
// milliseconds.
const (
	KeyUser   = "auth_user"
	KeyExpiry = "auth_expiry"
)

// Store is the durability layer for the single live session. Implementations
// must treat the session record and its expiry as one unit.
type Store interface {
	// Load returns the persisted session, or ErrNoSession when none exists.
	Load(ctx context.Context) (*Session, error)
	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, sess Session) error
	// Delete removes the persisted session. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}

// EncodeUser serializes the session record for the auth_user entry.
func EncodeUser(sess Session) ([]byte, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	return data, nil
}

// ExpiryMillis returns the auth_expiry entry value for the session.
func ExpiryMillis(sess Session) int64 {
	return sess.ExpiresAt.UnixMilli()
}

// DecodeUser reconstructs a session from the two persisted entries. The
// auth_expiry entry is authoritative for the expiry timestamp.
func DecodeUser(data []byte, expiryMillis int64) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	sess.ExpiresAt = time.UnixMilli(expiryMillis)
	return &sess, nil
}
