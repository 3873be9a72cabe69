package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Account errors
	ErrUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrUserExists         ErrorCode = "USER_EXISTS"
	ErrInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrMissingFields      ErrorCode = "MISSING_FIELDS"
	ErrPasswordMismatch   ErrorCode = "PASSWORD_MISMATCH"

	// Game state errors
	ErrInvalidState ErrorCode = "INVALID_STATE"
	ErrNoActiveHand ErrorCode = "NO_ACTIVE_HAND"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrArchiveError  ErrorCode = "ARCHIVE_ERROR"
)

// GameError represents an application error with a stable code the
// caller can branch on.
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if err == nil {
		return false
	}
	if ok := As(err, &gameErr); !ok {
		return false
	}
	return gameErr.Code == code
}

// As is a helper function to safely type assert an error to a GameError
func As(err error, target **GameError) bool {
	if target == nil {
		return false
	}
	if gameErr, ok := err.(*GameError); ok {
		*target = gameErr
		return true
	}
	return false
}
