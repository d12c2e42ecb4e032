package feedback

// Config is the configuration for the Kafka emitter
type Config struct {
	// Brokers is the list of Kafka brokers (required)
	Brokers []string `mapstructure:"brokers"`
	// Topic the events are published to
	// default: "coinboard.feedback"
	Topic string `mapstructure:"topic"`
	// ClientID identifies this producer in broker logs
	ClientID string `mapstructure:"client_id"`
	// Acks confirmation mode: "all", "1" or "0"
	// default: "all"
	Acks string `mapstructure:"acks"`
}

// DefaultConfig returns the default configuration for the emitter
// Note: Brokers has no default value and must be explicitly set
func DefaultConfig() *Config {
	return &Config{
		Topic: "coinboard.feedback",
		Acks:  "all",
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.Topic == "" {
		c.Topic = defaults.Topic
	}
	if c.Acks == "" {
		c.Acks = defaults.Acks
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return ErrInvalidConfig("brokers are required")
	}
	if c.Topic == "" {
		return ErrInvalidConfig("topic is required")
	}
	return nil
}
