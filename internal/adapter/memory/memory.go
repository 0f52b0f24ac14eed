// Package memory implements the domain repositories in memory for
// development and testing. Nothing survives a process restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
)

// DB implements an in-memory user store.
type DB struct {
	mu            sync.Mutex
	users         []*domain.User
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// GetByEmail returns the user with the given email, nil when absent.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// GetByID returns the user with the given id, nil when absent.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// GetByResetToken returns the user holding the reset token, nil when absent.
func (db *DB) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// Create inserts a new user.
func (db *DB) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return copyUser(u), nil
}

// UpdateSessionID replaces the user's current-session pointer.
func (db *DB) UpdateSessionID(ctx context.Context, id int64, sessionID *string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			u.SessionID = copyStringPtr(sessionID)
			return nil
		}
	}
	return nil
}

// SetResetToken overwrites the user's reset token.
func (db *DB) SetResetToken(ctx context.Context, id int64, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			t := token
			u.ResetToken = &t
			return nil
		}
	}
	return nil
}

// ResetPassword writes the new hash and clears the reset token under one
// lock, so no caller observes one without the other.
func (db *DB) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			return nil
		}
	}
	return nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// SessionRepo implements an in-memory session repository.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionRepo creates an empty in-memory session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]*domain.Session)}
}

// Create stores a new session row.
func (r *SessionRepo) Create(ctx context.Context, userID int64, sessionID string, createdAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
	return nil
}

// GetBySessionID returns the session row, nil when absent.
func (r *SessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete removes the session row and reports whether it existed.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(r.sessions, sessionID)
	return true, nil
}

// DeleteExpired removes sessions created before the cutoff.
func (r *SessionRepo) DeleteExpired(ctx context.Context, olderThan time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.CreatedAt.Before(olderThan) {
			delete(r.sessions, id)
		}
	}
	return nil
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	cp.SessionID = copyStringPtr(u.SessionID)
	cp.ResetToken = copyStringPtr(u.ResetToken)
	return &cp
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
