package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nopianhadi/adminkit/core/session"
)

const defaultKeyPrefix = "admin"

// SessionStore persists the single live session in Redis. The session record
// and its expiry are two entries under one prefix, written and read together
// in a transactional pipeline so a resume never sees a half-written pair.
// Both keys carry the session's TTL, so expired sessions evict themselves.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithKeyPrefix namespaces the session keys, for running several
// environments against one Redis instance.
func WithKeyPrefix(prefix string) SessionStoreOption {
	return func(s *SessionStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewSessionStore creates a session store over an established client.
func NewSessionStore(client *redis.Client, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) key(entry string) string {
	return s.prefix + ":" + entry
}

// Load implements session.Store. A missing or unreadable pair reports
// ErrNoSession; resume treats both the same way.
func (s *SessionStore) Load(ctx context.Context) (*session.Session, error) {
	pipe := s.client.TxPipeline()
	userCmd := pipe.Get(ctx, s.key(session.KeyUser))
	expiryCmd := pipe.Get(ctx, s.key(session.KeyExpiry))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis: load session: %w", err)
	}

	data, err := userCmd.Bytes()
	if err != nil {
		return nil, session.ErrNoSession
	}
	millis, err := expiryCmd.Int64()
	if err != nil {
		return nil, session.ErrNoSession
	}

	sess, err := session.DecodeUser(data, millis)
	if err != nil {
		return nil, session.ErrNoSession
	}
	return sess, nil
}

// Save implements session.Store, replacing any previous session.
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	data, err := session.EncodeUser(sess)
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Already expired; persisting it would be indistinguishable from no
		// session on the next load anyway.
		return s.Delete(ctx)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(session.KeyUser), data, ttl)
	pipe.Set(ctx, s.key(session.KeyExpiry), session.ExpiryMillis(sess), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	return nil
}

// Delete implements session.Store. Deleting nothing is not an error.
func (s *SessionStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(session.KeyUser), s.key(session.KeyExpiry)).Err(); err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	return nil
}
