package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nopianhadi/adminkit/core/store"
	"github.com/nopianhadi/adminkit/pkg/logger"
)

// Manager is the single source of truth for who is acting and whether they
// are still allowed to. It owns the current session, persists it through a
// Store, and verifies credentials against the users table of a store.Client.
//
// All mutation of the current session happens under one mutex; at most one
// session is live at any time, and a later login replaces an earlier one.
type Manager struct {
	users      store.Client
	sessions   Store
	usersTable string
	role       string
	ttl        time.Duration
	cost       int
	now        func() time.Time
	log        *slog.Logger

	mu        sync.Mutex
	current   *Session
	resumed   bool
	listeners []func(Status)
}

// NewManager creates a session manager. The users client is queried for
// credential checks; sessions is the durability layer for the live session.
// The stored session, if any, is resumed lazily on the first Current call.
func NewManager(users store.Client, sessions Store, opts ...Option) *Manager {
	m := &Manager{
		users:      users,
		sessions:   sessions,
		usersTable: defaultUsersTable,
		role:       defaultRole,
		ttl:        DefaultTTL,
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterParams carries the optional registration attributes. The handle
// defaults to the email local part, the display name to the handle, and the
// role to the manager's default role.
type RegisterParams struct {
	Handle      string
	DisplayName string
	Role        string
}

// Login verifies the identifier/secret pair and establishes a session that
// expires after the configured TTL. An identifier containing "@" is looked up
// by email, anything else by handle; exactly one lookup predicate is issued
// per call.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return Session{}, ErrMalformedInput
	}

	column := "handle"
	if strings.Contains(identifier, "@") {
		column = "email"
	}

	row, err := m.users.From(m.usersTable).
		Select("id", "email", "handle", "display_name", "role", "password_hash").
		Eq(column, identifier).
		Limit(1).
		Single(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	hash, _ := row["password_hash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	return m.establish(ctx, row)
}

// Register creates a user and establishes a session for it. The email/handle
// pre-check is a single combined lookup for fast feedback; the store's own
// uniqueness constraint remains the authoritative duplicate signal, so a
// rejected insert also surfaces as ErrDuplicateIdentity.
func (m *Manager) Register(ctx context.Context, email, secret string, params RegisterParams) (Session, error) {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || secret == "" {
		return Session{}, ErrMalformedInput
	}

	handle := params.Handle
	if handle == "" {
		handle = email[:at]
	}

	existing, err := m.users.From(m.usersTable).
		Select("id").
		Or(store.Eq("email", email), store.Eq("handle", handle)).
		Limit(1).
		Get(ctx)
	if err != nil {
		return Session{}, err
	}
	if len(existing) > 0 {
		return Session{}, ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), m.cost)
	if err != nil {
		return Session{}, err
	}

	displayName := params.DisplayName
	if displayName == "" {
		displayName = handle
	}
	role := params.Role
	if role == "" {
		role = m.role
	}

	rows, err := m.users.From(m.usersTable).Insert(ctx, store.Row{
		"email":         email,
		"handle":        handle,
		"display_name":  displayName,
		"role":          role,
		"password_hash": string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrRejected) {
			return Session{}, errors.Join(ErrDuplicateIdentity, err)
		}
		return Session{}, err
	}

	return m.establish(ctx, rows[0])
}

// Logout clears the stored session and demotes to unauthenticated. It never
// fails and is idempotent; clearing an already absent session is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.sessions.Delete(ctx); err != nil && !errors.Is(err, ErrNoSession) {
		m.log.Warn("clearing stored session failed",
			logger.Component("session"), logger.Error(err))
	}

	m.mu.Lock()
	wasAuthenticated := m.current != nil
	m.current = nil
	m.resumed = true
	m.mu.Unlock()

	if wasAuthenticated {
		m.notify(StatusUnauthenticated)
	}
}

// Current returns the live session. It resumes a persisted session on first
// use, checks expiry as a side effect, and self-demotes (deleting the stored
// record and notifying listeners) when the session has expired.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	m.mu.Lock()
	if !m.resumed {
		m.resumeLocked(ctx)
	}
	if m.current == nil {
		m.mu.Unlock()
		return Session{}, ErrNotAuthenticated
	}
	if m.current.ExpiredAt(m.now()) {
		expired := *m.current
		m.current = nil
		m.mu.Unlock()

		if err := m.sessions.Delete(ctx); err != nil {
			m.log.Warn("discarding expired session failed",
				logger.Component("session"), logger.Error(err))
		}
		m.log.Info("session expired",
			logger.Component("session"), logger.UserID(expired.UserID))
		m.notify(StatusUnauthenticated)
		return Session{}, ErrNotAuthenticated
	}

	sess := *m.current
	m.mu.Unlock()
	return sess, nil
}

// Authenticated reports whether a valid, unexpired session exists. It
// satisfies the repository guard interface.
func (m *Manager) Authenticated(ctx context.Context) bool {
	_, err := m.Current(ctx)
	return err == nil
}

// OnChange registers a listener invoked synchronously on every state
// transition. Listeners must not block.
func (m *Manager) OnChange(fn func(Status)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// resumeLocked loads the persisted session once at first use. An expired or
// corrupt record is discarded silently. Caller must hold mu.
func (m *Manager) resumeLocked(ctx context.Context) {
	m.resumed = true

	stored, err := m.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Warn("resuming stored session failed",
				logger.Component("session"), logger.Error(err))
		}
		return
	}
	if stored.ExpiredAt(m.now()) {
		if err := m.sessions.Delete(ctx); err != nil {
			m.log.Warn("discarding expired session failed",
				logger.Component("session"), logger.Error(err))
		}
		return
	}
	m.current = stored
}

func (m *Manager) establish(ctx context.Context, row store.Row) (Session, error) {
	now := m.now()
	sess := Session{
		UserID:      asString(row["id"]),
		Email:       asString(row["email"]),
		Handle:      asString(row["handle"]),
		DisplayName: asString(row["display_name"]),
		Role:        asString(row["role"]),
		IssuedAt:    now,
		ExpiresAt:   now.Add(m.ttl),
	}
	if sess.DisplayName == "" {
		sess.DisplayName = sess.Handle
	}

	if err := m.sessions.Save(ctx, sess); err != nil {
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	m.mu.Lock()
	m.resumed = true
	m.current = &sess
	m.mu.Unlock()

	m.log.Info("session established",
		logger.Component("session"), logger.UserID(sess.UserID))
	m.notify(StatusAuthenticated)
	return sess, nil
}

func (m *Manager) notify(status Status) {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
