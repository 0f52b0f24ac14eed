// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered account. The SessionID and ResetToken fields
// are nullable: nil means no active session pointer / no pending reset.
// Callers never mutate a User in place; all changes go through the
// UserRepository update operations.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	SessionID    *string
	ResetToken   *string
	CreatedAt    time.Time
}

// Session represents a persisted login session. Session IDs are unique;
// a user may accumulate many rows over time but only the most recent one
// is referenced by User.SessionID.
type Session struct {
	SessionID string
	UserID    int64
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
// Lookup methods return (nil, nil) when no record matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	// UpdateSessionID replaces the current-session pointer; nil clears it.
	UpdateSessionID(ctx context.Context, id int64, sessionID *string) error
	// SetResetToken overwrites any previous reset token for the user.
	SetResetToken(ctx context.Context, id int64, token string) error
	// ResetPassword writes the new hash and clears the reset token as a
	// single update; no intermediate state is ever observable.
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for durable session persistence used by
// the database-backed session strategy.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, sessionID string, createdAt time.Time) error
	GetBySessionID(ctx context.Context, sessionID string) (*Session, error)
	// Delete removes all rows for the session ID and reports whether any
	// existed.
	Delete(ctx context.Context, sessionID string) (bool, error)
	DeleteExpired(ctx context.Context, olderThan time.Time) error
}
