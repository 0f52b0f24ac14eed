// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"

	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates that no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates that the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidResetToken indicates that no user matches the reset token.
	ErrInvalidResetToken = errors.New("invalid reset token")
	// ErrInvalidUserID indicates that a session was requested for a bad user id.
	ErrInvalidUserID = errors.New("invalid user id")
)

// AuthService handles account registration, credential verification, and the
// password-reset flow. Session lifecycle belongs to the session strategies;
// this service only deals with the user records themselves.
type AuthService struct {
	users domain.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user. A duplicate email yields ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, email, hash)
}

// VerifyCredentials resolves the user for an email/password pair. Unknown
// emails and wrong passwords are indistinguishable: both report false.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, bool) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, false
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, false
	}
	return user, true
}

// UserByEmail resolves a user by email, ErrUserNotFound when absent.
func (s *AuthService) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureUser resolves a user by email, provisioning one with an empty
// password hash when absent. Used by SSO logins where no local password
// exists; such accounts can never pass CheckPassword.
func (s *AuthService) EnsureUser(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user, err = s.users.Create(ctx, email, "")
	if err != nil {
		// Lost a provisioning race; the other writer's row wins.
		if existing, getErr := s.users.GetByEmail(ctx, email); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a fresh reset token for the user, overwriting
// any previous one. An unknown email yields ErrUserNotFound so the caller can
// render it distinctly from a malformed request.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.UserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token exactly once: the new password hash is
// written and the token cleared in a single update. An unknown token yields
// ErrInvalidResetToken.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, hash)
}
