package cryptopanic

import "time"

// Config is the configuration for the CryptoPanic client
type Config struct {
	// BaseURL of the posts endpoint
	// default: "https://cryptopanic.com/api/developer/v2/posts/"
	BaseURL string `mapstructure:"base_url"`
	// APIKey authenticates requests; without it the client serves empty news
	APIKey string `mapstructure:"api_key"`
	// Timeout for each request
	// default: 10 * time.Second
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default configuration for the CryptoPanic client
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://cryptopanic.com/api/developer/v2/posts/",
		Timeout: 10 * time.Second,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}
