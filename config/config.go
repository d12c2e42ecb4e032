// Package config loads the application configuration from a YAML file and
// the environment. Each section unmarshals into the owning package's Config;
// validation stays with those packages.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dailyyoga/coinboard/analytics"
	"github.com/dailyyoga/coinboard/api"
	"github.com/dailyyoga/coinboard/auth"
	"github.com/dailyyoga/coinboard/cache"
	"github.com/dailyyoga/coinboard/db"
	"github.com/dailyyoga/coinboard/feedback"
	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/market/coingecko"
	"github.com/dailyyoga/coinboard/market/cryptopanic"
	"github.com/dailyyoga/coinboard/market/insight"
	"github.com/dailyyoga/coinboard/market/meme"
	"github.com/dailyyoga/coinboard/symbols"
)

// envPrefix namespaces environment overrides, e.g. COINBOARD_DATABASE_HOST.
const envPrefix = "COINBOARD"

// MaintenanceConfig controls the cache retention sweep.
type MaintenanceConfig struct {
	// SweepSchedule is a cron expression; empty disables the sweep
	SweepSchedule string `mapstructure:"sweep_schedule"`
	// SweepMaxAge is how old an entry must be to get swept
	// default: 720 * time.Hour
	SweepMaxAge time.Duration `mapstructure:"sweep_max_age"`
}

// MergeDefaults merges the default configuration with the given configuration
func (c *MaintenanceConfig) MergeDefaults() *MaintenanceConfig {
	if c.SweepMaxAge == 0 {
		c.SweepMaxAge = 720 * time.Hour
	}
	return c
}

// Config is the full application configuration.
type Config struct {
	Logger      *logger.Config      `mapstructure:"logger"`
	Database    *db.Config          `mapstructure:"database"`
	Cache       *cache.Config       `mapstructure:"cache"`
	Symbols     *symbols.Config     `mapstructure:"symbols"`
	CoinGecko   *coingecko.Config   `mapstructure:"coingecko"`
	CryptoPanic *cryptopanic.Config `mapstructure:"cryptopanic"`
	Meme        *meme.Config        `mapstructure:"meme"`
	Insight     *insight.Config     `mapstructure:"insight"`
	Auth        *auth.Config        `mapstructure:"auth"`
	API         *api.Config         `mapstructure:"api"`
	// Feedback enables the Kafka emitter when brokers are set
	Feedback *feedback.Config `mapstructure:"feedback"`
	// Analytics enables the ClickHouse recorder when addr is set
	Analytics   *analytics.Config  `mapstructure:"analytics"`
	Maintenance *MaintenanceConfig `mapstructure:"maintenance"`
}

// Load reads the configuration. A .env file is applied to the environment
// first when present, then the YAML file at path (optional), then
// COINBOARD_* environment overrides.
func Load(path string) (*Config, error) {
	// .env is a local dev convenience; absence is normal
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/coinboard")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, ErrRead(err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ErrUnmarshal(err)
	}
	if cfg.Maintenance == nil {
		cfg.Maintenance = &MaintenanceConfig{}
	}
	cfg.Maintenance.MergeDefaults()
	return cfg, nil
}
