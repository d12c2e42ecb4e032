package api

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned when a required service is missing
var ErrNilDependency = errors.New("api: all services are required")

// ErrInvalidConfig invalid config
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("api: invalid config: %s", msg)
}

// ErrServe wraps a listener failure
func ErrServe(err error) error {
	return fmt.Errorf("api: serve: %w", err)
}
