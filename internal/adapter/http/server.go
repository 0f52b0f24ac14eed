// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"strings"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/app"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultExcludedPaths lists the routes exempt from the authorization gate:
// everything a client needs before it has an identity. Entries ending in "*"
// are prefix matches.
var defaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/users/",
	"/api/v1/auth_session/login/",
	"/api/v1/reset_password/",
	"/api/v1/sso/*",
}

// Server is the driving HTTP adapter that routes requests to the auth
// service and the active authentication strategy.
type Server struct {
	auth       *app.AuthService
	strategy   app.Authenticator
	cookieName string
	excluded   []string
	oidc       *OIDCConfig
	logger     zerolog.Logger
}

// New creates a Server wired to the given service and strategy. A nil
// strategy disables the authorization gate; a nil oidc config disables the
// SSO routes.
func New(auth *app.AuthService, strategy app.Authenticator, cookieName string, oidc *OIDCConfig) *Server {
	return &Server{
		auth:       auth,
		strategy:   strategy,
		cookieName: cookieName,
		excluded:   defaultExcludedPaths,
		oidc:       oidc,
		logger:     log.Logger,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/status", s.handleStatus)
	api.HandleFunc("/users", s.handleRegister)
	api.HandleFunc("/users/me", s.handleProfile)
	api.HandleFunc("/auth_session/login", s.handleLogin)
	api.HandleFunc("/auth_session/logout", s.handleLogout)
	api.HandleFunc("/reset_password", s.handleResetPassword)
	if s.oidc != nil {
		api.HandleFunc("/sso/login", s.handleSSOLogin)
		api.HandleFunc("/sso/callback", s.handleSSOCallback)
	}

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", trimTrailingSlash(api)))

	return s.loggingMiddleware(s.authMiddleware(root))
}

// trimTrailingSlash lets "/users/" reach the "/users" handler, so routing is
// as slash-insensitive as the authorization gate.
func trimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := strings.CutSuffix(r.URL.Path, "/"); ok && p != "" {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p
			next.ServeHTTP(w, r2)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
