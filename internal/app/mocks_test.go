package app

import (
	"context"
	"errors"
	"time"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
)

// mockUserRepo follows the function-fields pattern: unset fields fall back to
// a "no record" default.
type mockUserRepo struct {
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	getByResetTokenFn func(ctx context.Context, token string) (*domain.User, error)
	createFn          func(ctx context.Context, email, passwordHash string) (*domain.User, error)
	updateSessionIDFn func(ctx context.Context, id int64, sessionID *string) error
	setResetTokenFn   func(ctx context.Context, id int64, token string) error
	resetPasswordFn   func(ctx context.Context, id int64, passwordHash string) error
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	if m.getByResetTokenFn != nil {
		return m.getByResetTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, passwordHash)
	}
	return &domain.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) UpdateSessionID(ctx context.Context, id int64, sessionID *string) error {
	if m.updateSessionIDFn != nil {
		return m.updateSessionIDFn(ctx, id, sessionID)
	}
	return nil
}

func (m *mockUserRepo) SetResetToken(ctx context.Context, id int64, token string) error {
	if m.setResetTokenFn != nil {
		return m.setResetTokenFn(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepo) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return 0, errors.New("not implemented")
}

type mockSessionRepo struct {
	createFn  func(ctx context.Context, userID int64, sessionID string, createdAt time.Time) error
	getFn     func(ctx context.Context, sessionID string) (*domain.Session, error)
	deleteFn  func(ctx context.Context, sessionID string) (bool, error)
	expiredFn func(ctx context.Context, olderThan time.Time) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, sessionID string, createdAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, sessionID, createdAt)
	}
	return nil
}

func (m *mockSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, sessionID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, sessionID)
	}
	return false, nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, olderThan time.Time) error {
	if m.expiredFn != nil {
		return m.expiredFn(ctx, olderThan)
	}
	return nil
}
