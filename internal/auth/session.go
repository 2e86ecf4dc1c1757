package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/code19m/errx"
)

const tokenBytes = 32

type sessionEntry struct {
	user      User
	expiresAt time.Time
}

// SessionManager keeps authenticated sessions in process memory. Tokens are
// opaque random strings handed to the browser as a cookie; entries expire
// after the configured TTL and are purged lazily on access.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]sessionEntry),
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Create registers a new session for user and returns its token.
func (m *SessionManager) Create(user User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", errx.Wrap(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = sessionEntry{
		user:      user,
		expiresAt: m.now().Add(m.ttl),
	}

	return token, nil
}

// Get resolves a token into its user. Expired or unknown tokens yield nil;
// expired entries are deleted on the way out.
func (m *SessionManager) Get(token string) *User {
	if token == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	if !ok {
		return nil
	}

	if m.now().After(entry.expiresAt) {
		delete(m.sessions, token)
		return nil
	}

	user := entry.user
	return &user
}

// Delete removes a session. Unknown tokens are a no-op.
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len reports the number of live entries, expired ones included until their
// next access.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errx.Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
