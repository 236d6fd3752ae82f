package models

import (
	"time"

	"github.com/google/uuid"
)

// User account statuses.
const (
	UserStatusNew    = "new"
	UserStatusActive = "active"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id"`

	// Email is the user's email address (unique). Used for login.
	Email string `db:"email"`

	// Name is the display name shown in meeting listings and statements.
	Name string `db:"name"`

	// Lastname is optional.
	Lastname string `db:"lastname"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed in API responses.
	PasswordHash string `db:"password_hash"`

	// Status is UserStatusNew until the account is activated.
	Status string `db:"status"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `db:"updated_at"`
}

// NewUser creates a new, not yet activated, user.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Status:       UserStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the account has been activated.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
