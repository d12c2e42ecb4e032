package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dailyyoga/coinboard/logger"
)

// RedisConfig is the configuration for the Redis store backend
type RedisConfig struct {
	// Addr is the redis address, host:port
	Addr string `mapstructure:"addr"`
	// Password for AUTH, empty for none
	Password string `mapstructure:"password"`
	// DB is the redis database number
	// default: 0
	DB int `mapstructure:"db"`
	// DialTimeout is the connection timeout
	// default: 5 * time.Second
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Validate validates the configuration
func (c *RedisConfig) Validate() error {
	if c.Addr == "" {
		return ErrInvalidConfig("redis addr is required")
	}
	if c.DB < 0 {
		return ErrInvalidConfig("redis db cannot be negative")
	}
	return nil
}

// redisEnvelope is the value stored per key.
type redisEnvelope struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// RedisStore is the Redis-backed Store, for deploys that keep the dashboard
// cache out of MySQL.
type RedisStore struct {
	rdb *redis.Client
	log logger.Logger
}

// NewRedisStore connects to Redis and returns the store.
func NewRedisStore(log logger.Logger, cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig("redis config is required")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, ErrConnection(err)
	}

	return &RedisStore{rdb: rdb, log: log}, nil
}

func redisKey(ownerID string, kind Kind) string {
	return fmt.Sprintf("dashboard:%s:%s", ownerID, kind.String())
}

// Get returns the entry for (owner, kind), or (nil, nil) when absent.
func (s *RedisStore) Get(ctx context.Context, ownerID string, kind Kind) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, redisKey(ownerID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, ErrGet(err)
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// corrupt value, treat as absent after reporting
		return nil, ErrGet(err)
	}
	return &Entry{
		OwnerID:   ownerID,
		Kind:      kind,
		Payload:   env.Payload,
		FetchedAt: env.FetchedAt,
	}, nil
}

// Put upserts the entry. Keys are unique per (owner, kind); duplicates are
// overwritten.
func (s *RedisStore) Put(ctx context.Context, ownerID string, kind Kind, payload json.RawMessage, fetchedAt time.Time) error {
	env := redisEnvelope{Payload: payload, FetchedAt: fetchedAt}
	raw, err := json.Marshal(env)
	if err != nil {
		return ErrPut(err)
	}
	if err := s.rdb.Set(ctx, redisKey(ownerID, kind), raw, 0).Err(); err != nil {
		return ErrPut(err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
