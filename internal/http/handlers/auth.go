package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"choreboard/internal/auth"
	"choreboard/internal/http/respond"
	"choreboard/internal/middleware"
	"choreboard/internal/models/dto"
	"choreboard/internal/session"
	"choreboard/internal/storage"
)

// AuthHandler owns registration, login/logout, and identity endpoints.
type AuthHandler struct {
	creds    *auth.Credentials
	sessions *session.Manager
	tokens   *auth.TokenManager
	guard    *middleware.Auth
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(creds *auth.Credentials, sessions *session.Manager, tokens *auth.TokenManager, guard *middleware.Auth) *AuthHandler {
	return &AuthHandler{creds: creds, sessions: sessions, tokens: tokens, guard: guard}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /logout", h.handleLogout)
	mux.HandleFunc("GET /api/user", h.handleCurrentUser)
	mux.HandleFunc("POST /api/token", h.handleToken)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	role := strings.TrimSpace(r.PostFormValue("role"))

	if username == "" || password == "" || role == "" {
		respond.Error(w, http.StatusBadRequest, "Missing fields: username/password/role")
		return
	}

	if _, err := h.creds.Register(r.Context(), username, password, role); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "Username already taken.")
			return
		}
		slog.Error("register failed", "username", username, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	http.Redirect(w, r, "/login.html", http.StatusFound)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.creds.Verify(r.Context(), username, password)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	value := h.sessions.Create(session.Identity{Username: user.Username, Role: user.Role})
	h.sessions.SetCookie(w, value)

	http.Redirect(w, r, "/chores.html", http.StatusFound)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleCurrentUser reports the logged-in identity, or {"user": null} for
// anonymous requests. No guard: the client script uses the null case to
// decide whether to redirect to the login page.
func (h *AuthHandler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if identity, ok := h.guard.Identify(r); ok {
		respond.JSON(w, http.StatusOK, map[string]any{"user": identity})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"user": nil})
}

// handleToken exchanges form credentials for a bearer token, for clients
// that cannot hold the session cookie.
func (h *AuthHandler) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.creds.Verify(r.Context(), username, password)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "username", username, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{Token: token, User: user})
}
