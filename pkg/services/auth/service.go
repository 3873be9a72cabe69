package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pipsbluff/pipsbluff/internal/types"
	"github.com/pipsbluff/pipsbluff/pkg/entities"
	userRepo "github.com/pipsbluff/pipsbluff/pkg/repositories/user"
	"golang.org/x/crypto/bcrypt"
)

// Credential failures deliberately share one message so a caller
// cannot tell a missing account from a wrong password.
const invalidCredentialsMessage = "invalid username or password"

// Service handles registration and login
type Service struct {
	repo userRepo.Repository
}

// NewService creates a new auth service
func NewService(repo userRepo.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Register validates the submitted fields, hashes the password and
// stores the new account.
func (s *Service) Register(ctx context.Context, username, email, password, confirmPassword string) (*entities.User, error) {
	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, types.NewGameError(types.ErrMissingFields, "all fields are required")
	}
	if password != confirmPassword {
		return nil, types.NewGameError(types.ErrPasswordMismatch, "passwords do not match")
	}

	exists, err := s.repo.Exists(ctx, username, email)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "error checking user existence", err)
	}
	if exists {
		return nil, types.NewGameError(types.ErrUserExists, "username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "error hashing password", err)
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			return nil, types.NewGameError(types.ErrUserExists, "username or email already exists")
		}
		return nil, types.WrapError(types.ErrDatabaseError, "error creating user", err)
	}

	return user, nil
}

// Login verifies the password against the stored hash and returns the
// account on success.
func (s *Service) Login(ctx context.Context, username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, types.NewGameError(types.ErrMissingFields, "username and password are required")
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, types.NewGameError(types.ErrInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, types.WrapError(types.ErrDatabaseError, "error getting user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.NewGameError(types.ErrInvalidCredentials, invalidCredentialsMessage)
	}

	return user, nil
}

// UpdateUsername renames an account
func (s *Service) UpdateUsername(ctx context.Context, username, newUsername string) error {
	if newUsername == "" {
		return types.NewGameError(types.ErrMissingFields, "new username is required")
	}
	if newUsername == username {
		return nil
	}

	err := s.repo.UpdateUsername(ctx, username, newUsername)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, userRepo.ErrUserNotFound):
		return types.NewGameError(types.ErrUserNotFound, fmt.Sprintf("no account named %q", username))
	case errors.Is(err, userRepo.ErrUserExists):
		return types.NewGameError(types.ErrUserExists, fmt.Sprintf("username %q is taken", newUsername))
	default:
		return types.WrapError(types.ErrDatabaseError, "error updating username", err)
	}
}
