package maintenance

import (
	"errors"
	"fmt"
	"time"
)

// ErrNilSweeper is returned when no sweeper is provided
var ErrNilSweeper = errors.New("maintenance: sweeper is required")

// ErrInvalidMaxAge is returned for non-positive retention windows
func ErrInvalidMaxAge(age time.Duration) error {
	return fmt.Errorf("maintenance: max age must be > 0, got %v", age)
}

// ErrSchedule wraps an invalid cron spec
func ErrSchedule(task, spec string, err error) error {
	return fmt.Errorf("maintenance: schedule task %s with spec %q: %w", task, spec, err)
}
