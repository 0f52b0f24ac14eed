package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
)

// Strategy names accepted by NewAuthenticator.
const (
	StrategyNone       = "none"
	StrategyBasic      = "basic"
	StrategySession    = "session"
	StrategySessionExp = "session_exp"
	StrategySessionDB  = "session_db"
)

// Authenticator is the capability surface shared by every authentication
// strategy. CurrentUser returns nil whenever the request carries no
// resolvable identity; callers never learn why.
type Authenticator interface {
	RequireAuth(path string, excluded []string) bool
	AuthorizationHeader(r *http.Request) string
	SessionCookie(r *http.Request) string
	CurrentUser(ctx context.Context, r *http.Request) *domain.User
}

// SessionCreator is implemented by strategies that can open sessions.
type SessionCreator interface {
	CreateSession(ctx context.Context, userID int64) (string, error)
}

// SessionDestroyer is implemented by strategies that can close sessions.
type SessionDestroyer interface {
	DestroySession(ctx context.Context, r *http.Request) bool
}

// StrategyConfig selects and parameterizes an authentication strategy at
// startup.
type StrategyConfig struct {
	Type       string
	CookieName string
	// SessionDuration bounds session lifetime for the expiring strategies.
	// Zero or negative means sessions never expire.
	SessionDuration time.Duration
}

// NewAuthenticator builds the authenticator for the configured strategy.
// The strategy set is closed; an unknown type is an error. The session
// repository is only required for the database-backed strategy.
func NewAuthenticator(cfg StrategyConfig, users domain.UserRepository, sessions domain.SessionRepository) (Authenticator, error) {
	base := baseAuth{cookieName: cfg.CookieName}
	switch cfg.Type {
	case StrategyNone:
		return &NoAuth{baseAuth: base}, nil
	case StrategyBasic:
		return &BasicAuth{baseAuth: base, users: users}, nil
	case StrategySession:
		return &SessionAuth{baseAuth: base, users: users, store: NewSessionStore()}, nil
	case StrategySessionExp:
		return &SessionExpAuth{
			SessionAuth: SessionAuth{baseAuth: base, users: users, store: NewSessionStore()},
			Duration:    cfg.SessionDuration,
		}, nil
	case StrategySessionDB:
		if sessions == nil {
			return nil, fmt.Errorf("strategy %q requires a session repository", cfg.Type)
		}
		return &SessionDBAuth{
			baseAuth: base,
			users:    users,
			sessions: sessions,
			Duration: cfg.SessionDuration,
		}, nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Type)
	}
}

// baseAuth supplies the strategy-independent pieces: the authorization gate,
// header access, and cookie access. An empty cookie name disables session
// lookup entirely, failing closed.
type baseAuth struct {
	cookieName string
}

func (a baseAuth) RequireAuth(path string, excluded []string) bool {
	return RequiresAuth(path, excluded)
}

func (a baseAuth) AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Authorization")
}

func (a baseAuth) SessionCookie(r *http.Request) string {
	if r == nil || a.cookieName == "" {
		return ""
	}
	c, err := r.Cookie(a.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// NoAuth enforces the gate but never resolves an identity. Every guarded
// request is rejected.
type NoAuth struct {
	baseAuth
}

func (a *NoAuth) CurrentUser(ctx context.Context, r *http.Request) *domain.User {
	return nil
}
