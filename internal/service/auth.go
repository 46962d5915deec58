// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services enforce the rules and
// orchestrate repositories and the image store; repositories do SQL. Every
// service receives its dependencies as interfaces, so tests swap in fakes
// with plain Go values — no HTTP, no database.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/auth"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository"
)

// AuthService verifies login credentials. Session issuance is the
// handler's job — this layer never touches cookies.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Login checks username and password and returns the matching user.
//
// Failure modes, in order:
//   - missing field   → validation error (400)
//   - unknown user    → not found (404) — "User tidak ditemukan"
//   - wrong password  → bad credentials (401) — "Password salah"
//
// The plaintext password is never logged or stored; it exists only long
// enough for the bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Username dan password wajib diisi")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		s.logger.Info("login rejected", slog.String("username", username))
		return nil, apperror.BadCredentials("Password salah")
	}

	s.logger.Info("login successful",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// GetByID returns the user for the given ID. Used by /api/auth/me.
func (s *AuthService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return user, nil
}
