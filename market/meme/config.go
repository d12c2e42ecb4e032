package meme

import "time"

// Config is the configuration for the meme client
type Config struct {
	// BaseURL is the subreddit hot listing endpoint
	// default: "https://www.reddit.com/r/cryptocurrencymemes/hot.json"
	BaseURL string `mapstructure:"base_url"`
	// UserAgent sent with every request; Reddit rejects the default Go one
	// default: "coinboard/1.0"
	UserAgent string `mapstructure:"user_agent"`
	// PostLimit is how many hot posts to consider
	// default: 50
	PostLimit int `mapstructure:"post_limit"`
	// Timeout for each request
	// default: 10 * time.Second
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default configuration for the meme client
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://www.reddit.com/r/cryptocurrencymemes/hot.json",
		UserAgent: "coinboard/1.0",
		PostLimit: 50,
		Timeout:   10 * time.Second,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.PostLimit == 0 {
		c.PostLimit = defaults.PostLimit
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}
