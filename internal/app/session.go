package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/logutil"

	"github.com/google/uuid"
)

// sessionResolver is the slice of a session strategy needed to turn a request
// into a user id and to drop a session. Each strategy implements it; the
// shared CurrentUser/DestroySession flows live in the helpers below so the
// variants stay a closed set instead of a dispatch hierarchy.
type sessionResolver interface {
	SessionCookie(r *http.Request) string
	UserIDBySession(ctx context.Context, sessionID string) (int64, bool)
	DropSession(ctx context.Context, sessionID string, userID int64) bool
}

// resolveSessionUser extracts the session cookie, resolves it to a user id,
// and fetches the identity. Any missing link yields nil.
func resolveSessionUser(ctx context.Context, r *http.Request, res sessionResolver, users domain.UserRepository) *domain.User {
	sessionID := res.SessionCookie(r)
	if sessionID == "" {
		return nil
	}
	userID, ok := res.UserIDBySession(ctx, sessionID)
	if !ok {
		return nil
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		l := logutil.GetOrDefault(ctx)
		l.Debug().Err(err).Msg("session user lookup failed")
		return nil
	}
	return user
}

// removeSession destroys the session bound to the request. It reports true
// only when a record was actually removed: a missing cookie, an unresolvable
// user id, or an already-absent record all report false.
func removeSession(ctx context.Context, r *http.Request, res sessionResolver) bool {
	sessionID := res.SessionCookie(r)
	if sessionID == "" {
		return false
	}
	userID, ok := res.UserIDBySession(ctx, sessionID)
	if !ok {
		return false
	}
	return res.DropSession(ctx, sessionID, userID)
}

// SessionAuth authenticates through opaque session ids held in an in-memory
// store. Sessions live for the process lifetime.
type SessionAuth struct {
	baseAuth
	users domain.UserRepository
	store *SessionStore
}

// CreateSession opens a session for the user and returns its id.
func (a *SessionAuth) CreateSession(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}
	return a.store.Put(userID), nil
}

// UserIDBySession is a plain lookup; unknown ids report false.
func (a *SessionAuth) UserIDBySession(ctx context.Context, sessionID string) (int64, bool) {
	e, ok := a.store.Get(sessionID)
	if !ok {
		return 0, false
	}
	return e.userID, true
}

func (a *SessionAuth) DropSession(ctx context.Context, sessionID string, userID int64) bool {
	return a.store.Delete(sessionID)
}

func (a *SessionAuth) CurrentUser(ctx context.Context, r *http.Request) *domain.User {
	return resolveSessionUser(ctx, r, a, a.users)
}

func (a *SessionAuth) DestroySession(ctx context.Context, r *http.Request) bool {
	return removeSession(ctx, r, a)
}

// SessionExpAuth is SessionAuth with time-boxed sessions. Only a strictly
// positive Duration activates expiration; zero or negative means sessions
// never expire.
type SessionExpAuth struct {
	SessionAuth
	Duration time.Duration
}

// UserIDBySession rejects sessions past their duration. An expired record is
// removed on the spot; the caller just sees no session.
func (a *SessionExpAuth) UserIDBySession(ctx context.Context, sessionID string) (int64, bool) {
	e, ok := a.store.Get(sessionID)
	if !ok {
		return 0, false
	}
	if a.Duration > 0 && time.Now().After(e.createdAt.Add(a.Duration)) {
		a.store.Delete(sessionID)
		return 0, false
	}
	return e.userID, true
}

func (a *SessionExpAuth) CurrentUser(ctx context.Context, r *http.Request) *domain.User {
	return resolveSessionUser(ctx, r, a, a.users)
}

func (a *SessionExpAuth) DestroySession(ctx context.Context, r *http.Request) bool {
	return removeSession(ctx, r, a)
}

// SessionDBAuth persists sessions through the session repository. Every
// resolution re-queries storage, so sessions survive restarts and are shared
// across instances. The user row keeps a pointer to the most recent session.
type SessionDBAuth struct {
	baseAuth
	users    domain.UserRepository
	sessions domain.SessionRepository
	Duration time.Duration
}

// CreateSession persists a session row and records it as the user's current
// session. A failed pointer write triggers a best-effort delete of the row;
// an orphan left behind is unreachable since its id is never returned.
func (a *SessionDBAuth) CreateSession(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}
	sessionID := uuid.NewString()
	if err := a.sessions.Create(ctx, userID, sessionID, time.Now()); err != nil {
		return "", err
	}
	if err := a.users.UpdateSessionID(ctx, userID, &sessionID); err != nil {
		_, _ = a.sessions.Delete(ctx, sessionID)
		return "", err
	}
	return sessionID, nil
}

func (a *SessionDBAuth) UserIDBySession(ctx context.Context, sessionID string) (int64, bool) {
	sess, err := a.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		l := logutil.GetOrDefault(ctx)
		l.Debug().Err(err).Msg("session row lookup failed")
		return 0, false
	}
	if sess == nil {
		return 0, false
	}
	if a.Duration > 0 && time.Now().After(sess.CreatedAt.Add(a.Duration)) {
		_, _ = a.sessions.Delete(ctx, sessionID)
		return 0, false
	}
	return sess.UserID, true
}

func (a *SessionDBAuth) DropSession(ctx context.Context, sessionID string, userID int64) bool {
	existed, err := a.sessions.Delete(ctx, sessionID)
	if err != nil {
		l := logutil.GetOrDefault(ctx)
		l.Debug().Err(err).Msg("session row delete failed")
		return false
	}
	if existed {
		if err := a.users.UpdateSessionID(ctx, userID, nil); err != nil {
			l := logutil.GetOrDefault(ctx)
			l.Debug().Err(err).Msg("clearing session pointer failed")
		}
	}
	return existed
}

func (a *SessionDBAuth) CurrentUser(ctx context.Context, r *http.Request) *domain.User {
	return resolveSessionUser(ctx, r, a, a.users)
}

func (a *SessionDBAuth) DestroySession(ctx context.Context, r *http.Request) bool {
	return removeSession(ctx, r, a)
}
