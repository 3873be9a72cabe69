package entities

import "time"

// User is a registered account. The game core never sees this type;
// only the auth service and its repositories do.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
