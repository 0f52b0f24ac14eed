package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
)

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, userID int64, sessionID string, createdAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO user_sessions (session_id, user_id, created_at) VALUES ($1, $2, $3)",
		sessionID, userID, createdAt)
	return err
}

// GetBySessionID retrieves a session row by its id.
func (r *SessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT session_id, user_id, created_at FROM user_sessions WHERE session_id = $1",
		sessionID).Scan(&s.SessionID, &s.UserID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the rows matching the session id and reports whether any
// existed.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.db.sql.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE session_id = $1", sessionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired removes sessions created before the cutoff.
func (r *SessionRepo) DeleteExpired(ctx context.Context, olderThan time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE created_at < $1", olderThan)
	return err
}
