package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCache is returned when no cache is provided
	ErrNilCache = errors.New("dashboard: cache is required")
	// ErrNilResolver is returned when no preference resolver is provided
	ErrNilResolver = errors.New("dashboard: preference resolver is required")
	// ErrNilSource is returned when a required producer is missing
	ErrNilSource = errors.New("dashboard: price, news, meme and insight sources are required")
)

// ErrPrices wraps a price producer failure
func ErrPrices(err error) error {
	return fmt.Errorf("dashboard: fetch prices: %w", err)
}

// ErrNews wraps a news producer failure
func ErrNews(err error) error {
	return fmt.Errorf("dashboard: fetch news: %w", err)
}
