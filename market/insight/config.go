package insight

import "time"

// Config is the configuration for the insight client
type Config struct {
	// BaseURL is the OpenAI-compatible chat completions endpoint
	// default: "https://router.huggingface.co/v1/chat/completions"
	BaseURL string `mapstructure:"base_url"`
	// APIKey authenticates requests; without it the local fallback is served
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier to request
	// default: "meta-llama/Llama-3.3-70B-Instruct"
	Model string `mapstructure:"model"`
	// MaxTokens caps the generation length
	// default: 150
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature for sampling
	// default: 0.7
	Temperature float64 `mapstructure:"temperature"`
	// TopP for nucleus sampling
	// default: 0.95
	TopP float64 `mapstructure:"top_p"`
	// MaxLength truncates the cleaned response text
	// default: 500
	MaxLength int `mapstructure:"max_length"`
	// Timeout for each request
	// default: 30 * time.Second
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default configuration for the insight client
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://router.huggingface.co/v1/chat/completions",
		Model:       "meta-llama/Llama-3.3-70B-Instruct",
		MaxTokens:   150,
		Temperature: 0.7,
		TopP:        0.95,
		MaxLength:   500,
		Timeout:     30 * time.Second,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaults.MaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = defaults.Temperature
	}
	if c.TopP == 0 {
		c.TopP = defaults.TopP
	}
	if c.MaxLength == 0 {
		c.MaxLength = defaults.MaxLength
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}
