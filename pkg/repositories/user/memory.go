package user

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already exists")
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	users map[string]*entities.User // keyed by username
	mu    sync.RWMutex
}

// NewMemoryRepository creates a new in-memory user repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]*entities.User),
	}
}

// Create stores a new user record
func (r *MemoryRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUserExists
	}
	for _, u := range r.users {
		if user.Email != "" && u.Email == user.Email {
			return ErrUserExists
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	// Store a copy to prevent concurrent modification
	userCopy := *user
	r.users[user.Username] = &userCopy
	return nil
}

// GetByUsername retrieves a user by username
func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// Exists reports whether a user with the given username or email exists
func (r *MemoryRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[username]; ok {
		return true, nil
	}
	for _, u := range r.users {
		if email != "" && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// UpdateUsername renames an existing account
func (r *MemoryRepository) UpdateUsername(ctx context.Context, username, newUsername string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[username]
	if !exists {
		return ErrUserNotFound
	}
	if _, taken := r.users[newUsername]; taken {
		return ErrUserExists
	}

	delete(r.users, username)
	user.Username = newUsername
	r.users[newUsername] = user
	return nil
}
