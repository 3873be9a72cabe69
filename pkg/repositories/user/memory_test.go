package user

import (
	"context"
	"testing"

	"github.com/pipsbluff/pipsbluff/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(username, email string) *entities.User {
	return &entities.User{
		ID:           "id-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	err := repo.Create(ctx, testUser("tuco", "tuco@example.com"))
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "tuco")
	require.NoError(t, err)
	assert.Equal(t, "tuco", got.Username)
	assert.Equal(t, "tuco@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero(), "created timestamp should be set")

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryRepositoryDuplicates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("tuco", "tuco@example.com")))

	// Same username
	err := repo.Create(ctx, testUser("tuco", "other@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)

	// Same email
	err = repo.Create(ctx, testUser("blondie", "tuco@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestMemoryRepositoryExists(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("tuco", "tuco@example.com")))

	exists, err := repo.Exists(ctx, "tuco", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "someone", "tuco@example.com")
	require.NoError(t, err)
	assert.True(t, exists, "matching email alone should count")

	exists, err = repo.Exists(ctx, "someone", "someone@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepositoryUpdateUsername(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("tuco", "tuco@example.com")))
	require.NoError(t, repo.Create(ctx, testUser("blondie", "blondie@example.com")))

	err := repo.UpdateUsername(ctx, "tuco", "ramirez")
	require.NoError(t, err)

	_, err = repo.GetByUsername(ctx, "tuco")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := repo.GetByUsername(ctx, "ramirez")
	require.NoError(t, err)
	assert.Equal(t, "tuco@example.com", got.Email, "rename keeps the rest of the record")

	// Renaming onto an existing account fails
	err = repo.UpdateUsername(ctx, "ramirez", "blondie")
	assert.ErrorIs(t, err, ErrUserExists)

	// Renaming a missing account fails
	err = repo.UpdateUsername(ctx, "nobody", "anything")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
