package user

import (
	"context"

	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

// Repository defines the interface for user account data operations
type Repository interface {
	// Create stores a new user record
	Create(ctx context.Context, user *entities.User) error

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Exists reports whether a user with the given username or email
	// is already registered
	Exists(ctx context.Context, username, email string) (bool, error)

	// UpdateUsername renames an existing account
	UpdateUsername(ctx context.Context, username, newUsername string) error
}
