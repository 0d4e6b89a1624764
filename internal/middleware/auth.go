package middleware

import (
	"context"
	"net/http"
	"strings"

	"choreboard/internal/auth"
	"choreboard/internal/http/respond"
	"choreboard/internal/models"
	"choreboard/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for the authenticated identity.
const identityKey contextKey = "identity"

// IdentityFrom extracts the authenticated identity from the context.
// The second return is false on requests that never passed RequireAuth.
func IdentityFrom(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}

// Auth resolves request identities from either the session cookie or a
// bearer token, and provides the route guards built on that.
type Auth struct {
	sessions *session.Manager
	tokens   *auth.TokenManager
}

// NewAuth constructs the guard set.
func NewAuth(sessions *session.Manager, tokens *auth.TokenManager) *Auth {
	return &Auth{sessions: sessions, tokens: tokens}
}

// Identify resolves the request's identity without enforcing anything.
// The session cookie wins; a bearer token is the fallback for API clients.
func (a *Auth) Identify(r *http.Request) (session.Identity, bool) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if identity, ok := a.sessions.Get(cookie.Value); ok {
			return identity, true
		}
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		if claims, err := a.tokens.Validate(token); err == nil {
			return session.Identity{Username: claims.Username, Role: claims.Role}, true
		}
	}

	return session.Identity{}, false
}

// RequireAuth passes the request through with the identity on the context,
// or redirects to the login page. The redirect (rather than a JSON 401)
// matches the browser-first flow of this app.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := a.Identify(r)
		if !ok {
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrganizer rejects authenticated users without the organizer role.
// It must run after RequireAuth, which is what puts the identity on the
// context; a missing identity therefore also fails here.
func (a *Auth) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || identity.Role != models.RoleOrganizer {
			respond.Error(w, http.StatusForbidden, "Access denied. Must be an organizer.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
