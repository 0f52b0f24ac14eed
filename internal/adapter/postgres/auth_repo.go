package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
)

const userColumns = "id, email, password_hash, session_id, reset_token, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.SessionID, &u.ResetToken, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves a user by email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetByResetToken retrieves the user holding a reset token.
func (d *DB) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token = $1", token))
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING "+userColumns,
		email, passwordHash, time.Now()))
}

// UpdateSessionID replaces the user's current-session pointer; nil clears it.
func (d *DB) UpdateSessionID(ctx context.Context, id int64, sessionID *string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET session_id = $1 WHERE id = $2", sessionID, id)
	return err
}

// SetResetToken overwrites the user's reset token.
func (d *DB) SetResetToken(ctx context.Context, id int64, token string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET reset_token = $1 WHERE id = $2", token, id)
	return err
}

// ResetPassword writes the new hash and clears the reset token in a single
// statement.
func (d *DB) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET password_hash = $1, reset_token = NULL WHERE id = $2", passwordHash, id)
	return err
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
