package user

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a user is not found.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when the email is already taken.
var ErrAlreadyExists = errors.New("user already exists")

// User represents a registered library user. Email is unique across users
// (exact, case-sensitive match).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
