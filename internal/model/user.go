package model

import (
	"errors"
	"fmt"
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     *string   `db:"last_name" json:"last_name"`
	PasswordHash string    `db:"password_hash" json:"-"` // "-" hides from JSON output
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the author information joined onto posts and comments.
type UserSummary struct {
	ID        int64   `db:"id" json:"id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name,omitempty"`
}

// Summary returns the public part of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// MinPasswordLength applies to new registrations only.
const MinPasswordLength = 8

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrEmailExists is returned when attempting to register a taken email
	ErrEmailExists = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrRequiredFields   = fmt.Errorf("%w: required fields missing", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email address", ErrValidation)

	// ErrInvalidCredentials never reveals whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
