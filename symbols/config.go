package symbols

import "time"

// Config holds configuration for the symbol directory sync
type Config struct {
	// SyncInterval is the interval between periodic sync operations
	// default: 24 * time.Hour
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	// SyncTimeout is the timeout for each sync operation
	// default: 30 * time.Second
	SyncTimeout time.Duration `mapstructure:"sync_timeout"`
}

// DefaultConfig returns the default configuration for the symbol directory
func DefaultConfig() *Config {
	return &Config{
		SyncInterval: 24 * time.Hour,
		SyncTimeout:  30 * time.Second,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.SyncInterval == 0 {
		c.SyncInterval = defaults.SyncInterval
	}
	if c.SyncTimeout == 0 {
		c.SyncTimeout = defaults.SyncTimeout
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SyncInterval <= 0 {
		return ErrInvalidSyncInterval(c.SyncInterval)
	}
	if c.SyncTimeout <= 0 {
		return ErrInvalidSyncTimeout(c.SyncTimeout)
	}
	return nil
}
