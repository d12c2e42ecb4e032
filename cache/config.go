package cache

import (
	"fmt"
	"time"
)

const (
	// BackendMySQL stores entries in the dashboard_caches MySQL table.
	BackendMySQL = "mysql"
	// BackendRedis stores entries in Redis.
	BackendRedis = "redis"

	// MemePolicyAlways refetches the meme on every request.
	MemePolicyAlways = "always"
	// MemePolicyDaily caches the meme until local midnight.
	MemePolicyDaily = "daily"
)

// Config holds the cache backend selection and per-kind freshness knobs.
type Config struct {
	// Backend selects the store: "mysql" or "redis"
	// default: "mysql"
	Backend string `mapstructure:"backend"`
	// PricesTTL is the rolling TTL for cached prices
	// default: 60 * time.Second
	PricesTTL time.Duration `mapstructure:"prices_ttl"`
	// NewsTTL is the rolling TTL for cached news
	// default: 60 * time.Second
	NewsTTL time.Duration `mapstructure:"news_ttl"`
	// MemePolicy decides whether the meme is cached: "always" refetches on
	// every request, "daily" caches until local midnight. The source
	// history has shipped both behaviors, so it stays an explicit choice.
	// default: "always"
	MemePolicy string `mapstructure:"meme_policy"`
	// Redis is required when Backend is "redis"
	Redis *RedisConfig `mapstructure:"redis"`
}

// DefaultConfig returns the default configuration for the cache
func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendMySQL,
		PricesTTL:  60 * time.Second,
		NewsTTL:    60 * time.Second,
		MemePolicy: MemePolicyAlways,
	}
}

// MergeDefaults merges the default configuration with the given configuration
func (c *Config) MergeDefaults() *Config {
	defaults := DefaultConfig()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.PricesTTL == 0 {
		c.PricesTTL = defaults.PricesTTL
	}
	if c.NewsTTL == 0 {
		c.NewsTTL = defaults.NewsTTL
	}
	if c.MemePolicy == "" {
		c.MemePolicy = defaults.MemePolicy
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend != BackendMySQL && c.Backend != BackendRedis {
		return ErrInvalidConfig(fmt.Sprintf("backend %q must be %q or %q", c.Backend, BackendMySQL, BackendRedis))
	}
	if c.PricesTTL <= 0 {
		return ErrInvalidConfig("prices_ttl must be > 0")
	}
	if c.NewsTTL <= 0 {
		return ErrInvalidConfig("news_ttl must be > 0")
	}
	if c.MemePolicy != MemePolicyAlways && c.MemePolicy != MemePolicyDaily {
		return ErrInvalidConfig(fmt.Sprintf("meme_policy %q must be %q or %q", c.MemePolicy, MemePolicyAlways, MemePolicyDaily))
	}
	if c.Backend == BackendRedis && c.Redis == nil {
		return ErrInvalidConfig("redis config is required when backend is redis")
	}
	return nil
}

// PolicySet builds the kind-to-policy binding from the configuration.
// The insight policy is fixed to calendar-day: one generation per user per
// local day, resetting at midnight.
func (c *Config) PolicySet() PolicySet {
	memePolicy := AlwaysRefetch()
	if c.MemePolicy == MemePolicyDaily {
		memePolicy = CalendarDay()
	}
	return PolicySet{
		KindPrices:  RollingTTL(c.PricesTTL),
		KindNews:    RollingTTL(c.NewsTTL),
		KindMeme:    memePolicy,
		KindInsight: CalendarDay(),
	}
}
