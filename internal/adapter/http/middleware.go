package adapthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/logutil"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user placed by the auth
// middleware, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// authMiddleware applies the authorization gate and resolves the request
// identity through the active strategy. A request with neither an
// Authorization header nor a session cookie is unauthorized; a request whose
// identity cannot be resolved is forbidden.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.strategy == nil || !s.strategy.RequireAuth(r.URL.Path, s.excluded) {
			next.ServeHTTP(w, r)
			return
		}

		if s.strategy.AuthorizationHeader(r) == "" && s.strategy.SessionCookie(r) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user := s.strategy.CurrentUser(r.Context(), r)
		if user == nil {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// loggingMiddleware logs one line per request and threads the logger into
// the request context.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := logutil.WithLogger(r.Context(), s.logger)
		next.ServeHTTP(rec, r.WithContext(ctx))
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
