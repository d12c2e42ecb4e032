package coingecko

import "time"

// Config is the configuration for the CoinGecko client
type Config struct {
	// BaseURL of the API
	// default: "https://api.coingecko.com/api/v3"
	BaseURL string `mapstructure:"base_url"`
	// APIKey is the demo API key; optional, public rate limits apply without it
	APIKey string `mapstructure:"api_key"`
	// Timeout for each request
	// default: 10 * time.Second
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default configuration for the CoinGecko client
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.coingecko.com/api/v3",
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
