package feedback

import (
	"errors"
	"fmt"
)

// ErrNilDatabase is returned when no database is provided
var ErrNilDatabase = errors.New("feedback: database is required")

// ErrInvalidConfig invalid config
func ErrInvalidConfig(msg string) error {
	return fmt.Errorf("feedback: invalid config: %s", msg)
}

// ErrInvalidRating is returned for ratings other than up/down
func ErrInvalidRating(rating string) error {
	return fmt.Errorf("feedback: invalid rating %q, must be %q or %q", rating, RatingUp, RatingDown)
}

// ErrQuery wraps a database error
func ErrQuery(err error) error {
	return fmt.Errorf("feedback: query: %w", err)
}

// ErrProducer wraps a Kafka producer setup error
func ErrProducer(err error) error {
	return fmt.Errorf("feedback: create producer: %w", err)
}

// ErrEncode wraps an event encoding error
func ErrEncode(err error) error {
	return fmt.Errorf("feedback: encode event: %w", err)
}
