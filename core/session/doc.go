// Package session implements the authentication session for the admin
// back-office: a single live session per process, persisted through a
// pluggable Store so it survives restarts, with an absolute expiry checked on
// every read.
//
// # Core Components
//
//   - Session: the identity record (user id, display name, role, expiry)
//   - Manager: owns the state machine (login, register, logout, resume)
//   - Store: durability interface (memory, file, Redis adapters)
//
// # Basic Usage
//
//	import "github.com/nopianhadi/adminkit/core/session"
//
//	manager := session.NewManager(storeClient, session.NewFileStore(path),
//		session.WithTTL(24*time.Hour),
//	)
//
//	sess, err := manager.Login(ctx, "admin@example.com", "secret")
//	if err != nil {
//		// session.ErrInvalidCredentials, session.ErrMalformedInput, or a
//		// transport error from the user lookup
//	}
//
//	current, err := manager.Current(ctx)
//	// err == session.ErrNotAuthenticated once the session expires
//
// The login identifier may be an email address or a bare handle; the manager
// picks the lookup column by the presence of "@" and issues exactly one
// predicate per call.
//
// # State Transitions
//
// Register OnChange listeners to observe transitions synchronously, e.g. to
// redirect protected views the moment a session expires:
//
//	manager.OnChange(func(status session.Status) {
//		if status == session.StatusUnauthenticated {
//			redirectToLogin()
//		}
//	})
//
// Secrets are verified against bcrypt hashes stored in the users table; the
// session record itself never carries the secret or its hash.
package session
