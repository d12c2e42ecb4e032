package analytics

import (
	"errors"
	"fmt"
)

// ErrRecorderClosed is returned when writing to a closed recorder
var ErrRecorderClosed = errors.New("analytics: recorder is closed")

// ErrInvalidConfig invalid config
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("analytics: invalid config: %s", msg)
}

// ErrConnection wraps a ClickHouse connection error
func ErrConnection(err error) error {
	return fmt.Errorf("analytics: connect: %w", err)
}

// ErrInsert wraps a batch insert error
func ErrInsert(err error) error {
	return fmt.Errorf("analytics: insert: %w", err)
}
