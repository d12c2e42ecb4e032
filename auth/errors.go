package auth

import "fmt"

var (
	// ErrPasswordTooShort is returned for passwords below the minimum length
	ErrPasswordTooShort = fmt.Errorf("auth: password must be at least %d characters", MinPasswordLength)
	// ErrMissingSubject is returned when a valid token carries no user id
	ErrMissingSubject = fmt.Errorf("auth: token has no subject")
)

// ErrInvalidConfig invalid config
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("auth: invalid config: %s", msg)
}

// ErrHash wraps a password hashing error
func ErrHash(err error) error {
	return fmt.Errorf("auth: hash password: %w", err)
}

// ErrSign wraps a token signing error
func ErrSign(err error) error {
	return fmt.Errorf("auth: sign token: %w", err)
}

// ErrInvalidToken wraps a token validation error
func ErrInvalidToken(err error) error {
	return fmt.Errorf("auth: invalid token: %w", err)
}

// ErrUnexpectedSigningMethod returns an error for a forged signing method
func ErrUnexpectedSigningMethod(alg string) error {
	return fmt.Errorf("auth: unexpected signing method: %s", alg)
}
