package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/pipsbluff/pipsbluff/internal/types"
	userRepo "github.com/pipsbluff/pipsbluff/pkg/repositories/user"
	"github.com/pipsbluff/pipsbluff/pkg/repositories/user/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	service := NewService(userRepo.NewMemoryRepository())
	ctx := context.Background()

	user, err := service.Register(ctx, "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "tuco", user.Username)

	// The stored hash verifies against the original password and is
	// not the password itself
	assert.NotEqual(t, "hunter2x", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2x")))
}

func TestRegisterValidation(t *testing.T) {
	service := NewService(userRepo.NewMemoryRepository())
	ctx := context.Background()

	testCases := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		code     types.ErrorCode
	}{
		{
			name:     "missing username",
			email:    "a@example.com",
			password: "hunter2x",
			confirm:  "hunter2x",
			code:     types.ErrMissingFields,
		},
		{
			name:     "missing password",
			username: "tuco",
			email:    "a@example.com",
			confirm:  "hunter2x",
			code:     types.ErrMissingFields,
		},
		{
			name:     "password confirmation mismatch",
			username: "tuco",
			email:    "a@example.com",
			password: "hunter2x",
			confirm:  "different",
			code:     types.ErrPasswordMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(ctx, tc.username, tc.email, tc.password, tc.confirm)
			assert.True(t, types.IsGameError(err, tc.code), "expected %s, got %v", tc.code, err)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	service := NewService(userRepo.NewMemoryRepository())
	ctx := context.Background()

	_, err := service.Register(ctx, "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	require.NoError(t, err)

	_, err = service.Register(ctx, "tuco", "other@example.com", "hunter2x", "hunter2x")
	assert.True(t, types.IsGameError(err, types.ErrUserExists))

	_, err = service.Register(ctx, "other", "tuco@example.com", "hunter2x", "hunter2x")
	assert.True(t, types.IsGameError(err, types.ErrUserExists))
}

func TestLogin(t *testing.T) {
	service := NewService(userRepo.NewMemoryRepository())
	ctx := context.Background()

	registered, err := service.Register(ctx, "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	require.NoError(t, err)

	user, err := service.Login(ctx, "tuco", "hunter2x")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewService(userRepo.NewMemoryRepository())
	ctx := context.Background()

	_, err := service.Register(ctx, "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	require.NoError(t, err)

	// An unknown user and a wrong password must be indistinguishable
	_, unknownErr := service.Login(ctx, "nobody", "hunter2x")
	_, wrongErr := service.Login(ctx, "tuco", "wrong")

	assert.True(t, types.IsGameError(unknownErr, types.ErrInvalidCredentials))
	assert.True(t, types.IsGameError(wrongErr, types.ErrInvalidCredentials))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginRepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	service := NewService(repo)

	repo.EXPECT().
		GetByUsername(gomock.Any(), "tuco").
		Return(nil, errors.New("disk on fire"))

	_, err := service.Login(context.Background(), "tuco", "hunter2x")
	assert.True(t, types.IsGameError(err, types.ErrDatabaseError), "repository failures surface as database errors, got %v", err)
}

func TestRegisterRepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	service := NewService(repo)

	repo.EXPECT().
		Exists(gomock.Any(), "tuco", "tuco@example.com").
		Return(false, errors.New("disk on fire"))

	_, err := service.Register(context.Background(), "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	assert.True(t, types.IsGameError(err, types.ErrDatabaseError))
}

func TestUpdateUsername(t *testing.T) {
	repo := userRepo.NewMemoryRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Register(ctx, "tuco", "tuco@example.com", "hunter2x", "hunter2x")
	require.NoError(t, err)

	require.NoError(t, service.UpdateUsername(ctx, "tuco", "ramirez"))

	_, err = service.Login(ctx, "ramirez", "hunter2x")
	assert.NoError(t, err)

	// Renaming to the same name is a no-op
	assert.NoError(t, service.UpdateUsername(ctx, "ramirez", "ramirez"))

	// Unknown account
	err = service.UpdateUsername(ctx, "nobody", "anything")
	assert.True(t, types.IsGameError(err, types.ErrUserNotFound))

	// Empty target name
	err = service.UpdateUsername(ctx, "ramirez", "")
	assert.True(t, types.IsGameError(err, types.ErrMissingFields))
}
