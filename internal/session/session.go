// Package session maps browser-held tokens to authenticated identities.
// Sessions live in process memory: a restart logs everyone out.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the signed session token.
const CookieName = "choreboard_session"

// Identity is the authenticated principal bound to a session.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type entry struct {
	identity Identity
	expires  time.Time
}

// Manager issues opaque session tokens and resolves them back to
// identities. Cookie values are signed with an HMAC so a tampered token
// is rejected before the map lookup.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]entry
	secret   []byte
	ttl      time.Duration
}

// NewManager creates a session manager signing cookies with the given
// secret. Sessions expire after ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]entry),
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Create binds the identity to a fresh token and returns the signed
// cookie value.
func (m *Manager) Create(identity Identity) string {
	token := uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = entry{identity: identity, expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()

	return token + "." + m.sign(token)
}

// Get resolves a signed cookie value to its identity. It returns false
// for unknown, expired, or tampered tokens.
func (m *Manager) Get(value string) (Identity, bool) {
	token, ok := m.verify(value)
	if !ok {
		return Identity{}, false
	}

	m.mu.RLock()
	e, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return Identity{}, false
	}
	if time.Now().After(e.expires) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return Identity{}, false
	}
	return e.identity, true
}

// Destroy removes the session. Destroying an unknown or already destroyed
// session is a no-op.
func (m *Manager) Destroy(value string) {
	token, ok := m.verify(value)
	if !ok {
		return
	}
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// SetCookie attaches the session cookie to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify splits a cookie value into token and signature and checks the
// signature in constant time.
func (m *Manager) verify(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	expected := m.sign(token)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return token, true
}
