package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/auth"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository"
)

// UserService handles account management: signup, profile updates, and
// removal. All password handling goes through the policy in internal/auth
// and the bcrypt PasswordService — plaintext never reaches a repository.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// List returns all accounts. Password hashes ride along in the model but
// are excluded from JSON by the `json:"-"` tag.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByID returns one account, or ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create registers a new account (self-service signup, no auth required).
//
// ORDER OF CHECKS (all before any hash or write, per the password policy):
//  1. every field present
//  2. password policy + confirmation
//  3. username not taken (exact, case-sensitive match)
//
// Only then is the password hashed and the row inserted. The UNIQUE column
// constraint backs up step 3 if two signups race.
func (s *UserService) Create(ctx context.Context, nama, username, password, confPassword string) (*model.User, error) {
	if nama == "" || username == "" || password == "" || confPassword == "" {
		return nil, apperror.ValidationFailed("", "Semua field harus diisi")
	}

	if err := auth.ValidatePassword(password, confPassword); err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password for %q: %w", username, err)
	}

	user := &model.User{
		Nama:     nama,
		Username: username,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user %q: %w", username, err)
	}

	s.logger.Info("user created",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Update modifies an existing account. Empty fields keep their previous
// values. A username change re-checks uniqueness; a password change re-runs
// the full policy and requires the confirmation field again.
func (s *UserService) Update(ctx context.Context, id int64, nama, username, password, confPassword string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		if err := s.ensureUsernameFree(ctx, username); err != nil {
			return nil, err
		}
		user.Username = username
	}

	if password != "" {
		if err := auth.ValidatePassword(password, confPassword); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hashing new password for user %d: %w", id, err)
		}
		user.Password = hash
	}

	if nama != "" {
		user.Nama = nama
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	s.logger.Info("user updated", slog.Int64("userID", id))

	return user, nil
}

// Delete removes an account, or returns ErrNotFound.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int64("userID", id))
	return nil
}

// ensureUsernameFree fails with the signup message when username is taken.
// A NotFound from the lookup is the good case here.
func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return apperror.ValidationFailed("username", "Username sudah terdaftar")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking username %q: %w", username, err)
	}
	return nil
}
