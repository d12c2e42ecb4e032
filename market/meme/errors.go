package meme

import "fmt"

// ErrRequest wraps a transport-level request error
func ErrRequest(err error) error {
	return fmt.Errorf("meme: request failed: %w", err)
}

// ErrStatus returns an error for an unexpected HTTP status
func ErrStatus(code int) error {
	return fmt.Errorf("meme: unexpected status %d", code)
}

// ErrDecode wraps a response decoding error
func ErrDecode(err error) error {
	return fmt.Errorf("meme: decode response: %w", err)
}
