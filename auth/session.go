package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onokeee/mindmap"
)

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 24 * time.Hour

// Session binds a browser to an authenticated user for SessionTTL. It lives
// in memory only: sessions do not survive a restart.
type Session struct {
	ID       string
	UserID   int
	Username string

	ExpiresAt time.Time
}

// SessionRegistry keeps the active sessions, keyed by session id. All methods
// are safe for concurrent use.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]Session

	now func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Start creates a session for user, valid for SessionTTL from now.
func (r *SessionRegistry) Start(user *mindmap.User) Session {
	session := Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: r.now().Add(SessionTTL),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session
}

// Validate returns the session for id, or nil when it does not exist or has
// expired. Expired sessions are dropped on the way.
func (r *SessionRegistry) Validate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil
	}

	if !r.now().Before(session.ExpiresAt) {
		delete(r.sessions, id)
		return nil
	}

	return &session
}

// End invalidates the session immediately. Ending an unknown session is a
// no-op: logout always succeeds.
func (r *SessionRegistry) End(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
