package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samdwyer/floorgen/internal/generator"
)

const (
	defaultPrefix = "floorgen:floor:"
	defaultTTL    = 24 * time.Hour
)

// RedisOptions configures the Redis client.
type RedisOptions struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	PoolSize    int           `yaml:"pool_size"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	TTL         time.Duration `yaml:"ttl"`
	KeyPrefix   string        `yaml:"key_prefix"`
}

// NewClient creates a Redis client for a single instance. Redis connects
// lazily, so an unreachable server only shows up on first use.
func NewClient(opts RedisOptions) (redis.UniversalClient, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis: addr is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		PoolSize:    opts.PoolSize,
		MaxRetries:  opts.MaxRetries,
		DialTimeout: opts.DialTimeout,
	}), nil
}

// RedisConfig holds the dependencies of a RedisCache.
type RedisConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
	Prefix string
}

// Validate ensures all required dependencies are provided.
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.New("redis client is required")
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must not be negative, got %s", c.TTL)
	}
	return nil
}

// RedisCache stores floors as JSON with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a cache backed by cfg.Client.
func NewRedisCache(cfg *RedisConfig) (*RedisCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := &RedisCache{client: cfg.Client, ttl: cfg.TTL, prefix: cfg.Prefix}
	if c.ttl == 0 {
		c.ttl = defaultTTL
	}
	if c.prefix == "" {
		c.prefix = defaultPrefix
	}
	return c, nil
}

func (c *RedisCache) key(k Key) string {
	return c.prefix + string(k)
}

// Get retrieves a floor.
func (c *RedisCache) Get(ctx context.Context, key Key) (*generator.Floor, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get floor %s: %w", key, err)
	}

	var f generator.Floor
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode floor %s: %w", key, err)
	}
	return &f, nil
}

// Put stores a floor, replacing any previous entry.
func (c *RedisCache) Put(ctx context.Context, key Key, f *generator.Floor) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode floor %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store floor %s: %w", key, err)
	}
	return nil
}

// Delete removes a floor. Deleting a missing floor is not an error.
func (c *RedisCache) Delete(ctx context.Context, key Key) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete floor %s: %w", key, err)
	}
	return nil
}
