package insight

import "fmt"

// ErrRequest wraps a transport-level request error
func ErrRequest(err error) error {
	return fmt.Errorf("insight: request failed: %w", err)
}

// ErrStatus returns an error for an unexpected HTTP status
func ErrStatus(code int) error {
	return fmt.Errorf("insight: unexpected status %d", code)
}

// ErrDecode wraps a response decoding error
func ErrDecode(err error) error {
	return fmt.Errorf("insight: decode response: %w", err)
}
