package user

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDatabase is returned when no database is provided
	ErrNilDatabase = errors.New("user: database is required")
	// ErrInvalidEmail is returned for a malformed email address
	ErrInvalidEmail = errors.New("user: invalid email address")
	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("user: email already registered")
	// ErrInvalidCredentials is returned for a failed login
	ErrInvalidCredentials = errors.New("user: invalid credentials")
	// ErrNotFound is returned when the account does not exist
	ErrNotFound = errors.New("user: not found")
)

// ErrQuery wraps a database error
func ErrQuery(err error) error {
	return fmt.Errorf("user: query: %w", err)
}

// ErrDecodePreferences wraps a preferences decode error
func ErrDecodePreferences(err error) error {
	return fmt.Errorf("user: decode preferences: %w", err)
}

// ErrEncodePreferences wraps a preferences encode error
func ErrEncodePreferences(err error) error {
	return fmt.Errorf("user: encode preferences: %w", err)
}
