package config

import "fmt"

// ErrRead wraps a config file read error
func ErrRead(err error) error {
	return fmt.Errorf("config: read: %w", err)
}

// ErrUnmarshal wraps a config decode error
func ErrUnmarshal(err error) error {
	return fmt.Errorf("config: unmarshal: %w", err)
}
