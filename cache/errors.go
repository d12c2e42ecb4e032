package cache

import "fmt"

// ErrInvalidConfig returns an error for an invalid configuration
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("cache: invalid config: %s", msg)
}

// ErrGet wraps a store read error
func ErrGet(err error) error {
	return fmt.Errorf("cache: get failed: %w", err)
}

// ErrPut wraps a store write error
func ErrPut(err error) error {
	return fmt.Errorf("cache: put failed: %w", err)
}

// ErrConnection wraps a backend connection error
func ErrConnection(err error) error {
	return fmt.Errorf("cache: connection failed: %w", err)
}
