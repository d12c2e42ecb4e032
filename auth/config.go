package auth

import "time"

// Config is the configuration for session tokens
type Config struct {
	// Secret signs the HS256 tokens (required)
	Secret string `mapstructure:"secret"`
	// TokenTTL is how long issued tokens stay valid
	// default: 24 * time.Hour
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// DefaultConfig returns the default configuration for session tokens
// Note: Secret has no default value and must be explicitly set
func DefaultConfig() *Config {
	return &Config{
		TokenTTL: 24 * time.Hour,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.TokenTTL == 0 {
		c.TokenTTL = defaults.TokenTTL
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Secret == "" {
		return ErrInvalidConfig("secret is required")
	}
	if c.TokenTTL <= 0 {
		return ErrInvalidConfig("token_ttl must be > 0")
	}
	return nil
}
