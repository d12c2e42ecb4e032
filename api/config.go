package api

import "time"

// Config is the configuration for the HTTP server
type Config struct {
	// Host to bind
	// default: "0.0.0.0"
	Host string `mapstructure:"host"`
	// Port to listen on
	// default: "8080"
	Port string `mapstructure:"port"`
	// AllowOrigins is the CORS allowlist
	// default: local dev frontends
	AllowOrigins []string `mapstructure:"allow_origins"`
	// ReadTimeout for incoming requests
	// default: 10 * time.Second
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout for responses
	// default: 30 * time.Second
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown
	// default: 10 * time.Second
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration for the HTTP server
func DefaultConfig() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: "8080",
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.Host == "" {
		c.Host = defaults.Host
	}
	if c.Port == "" {
		c.Port = defaults.Port
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = defaults.AllowOrigins
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return ErrInvalidConfig("port is required")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return ErrInvalidConfig("timeouts must be > 0")
	}
	return nil
}
