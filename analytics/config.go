package analytics

import "time"

// Config is the configuration for the ClickHouse recorder
type Config struct {
	// Addr is the list of ClickHouse addresses (required)
	Addr []string `mapstructure:"addr"`
	// Database is the database name
	// default: "default"
	Database string `mapstructure:"database"`
	// Username for authentication
	Username string `mapstructure:"username"`
	// Password for authentication
	Password string `mapstructure:"password"`
	// DialTimeout is the connection timeout
	// default: 5 * time.Second
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	// FlushInterval is how often buffered events are flushed
	// default: 5 * time.Second
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	// FlushSize flushes early once this many events are buffered
	// default: 100
	FlushSize int `mapstructure:"flush_size"`
}

// DefaultConfig returns the default configuration for the recorder
// Note: Addr has no default value and must be explicitly set
func DefaultConfig() *Config {
	return &Config{
		Database:      "default",
		DialTimeout:   5 * time.Second,
		FlushInterval: 5 * time.Second,
		FlushSize:     100,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaults.DialTimeout
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = defaults.FlushInterval
	}
	if c.FlushSize == 0 {
		c.FlushSize = defaults.FlushSize
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Addr) == 0 {
		return ErrInvalidConfig("addr is required")
	}
	if c.FlushInterval <= 0 {
		return ErrInvalidConfig("flush_interval must be > 0")
	}
	if c.FlushSize <= 0 {
		return ErrInvalidConfig("flush_size must be > 0")
	}
	return nil
}
