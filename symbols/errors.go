package symbols

import (
	"fmt"
	"time"
)

var (
	// ErrEmptySync is returned when a sync source produces no symbols
	ErrEmptySync = fmt.Errorf("symbols: sync returned empty mapping")
)

// ErrSync wraps a sync operation error
func ErrSync(err error) error {
	return fmt.Errorf("symbols: sync failed: %w", err)
}

// ErrInvalidSyncInterval returns an error for invalid sync interval
func ErrInvalidSyncInterval(interval time.Duration) error {
	return fmt.Errorf("symbols: invalid sync interval: %v (must be > 0)", interval)
}

// ErrInvalidSyncTimeout returns an error for invalid sync timeout
func ErrInvalidSyncTimeout(timeout time.Duration) error {
	return fmt.Errorf("symbols: invalid sync timeout: %v (must be > 0)", timeout)
}
