// Package server wires middleware, routes, and static assets into an
// http.Server.
package server

import (
	"context"
	"net/http"
	"time"

	"choreboard/internal/auth"
	"choreboard/internal/config"
	"choreboard/internal/http/handlers"
	"choreboard/internal/metrics"
	"choreboard/internal/middleware"
	"choreboard/internal/session"
	"choreboard/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the full route tree with the middleware chain applied.
// It is split from New so tests can serve it with httptest.
func Handler(cfg config.Config, store storage.Store) http.Handler {
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.TokenTTL)
	creds := auth.NewCredentials(store)
	guard := middleware.NewAuth(sessions, tokens)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(creds, sessions, tokens, guard).Register(mux)
	handlers.NewChoreHandler(store, guard).Register(mux)
	mux.Handle("GET /metrics", metrics.Handler())

	// Everything else is the static UI: index, login/register pages, and
	// the chores script.
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	return middleware.CORS(cfg.CORSOrigins, metrics.Instrument(middleware.Logging(mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
