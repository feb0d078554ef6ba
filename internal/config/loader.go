package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/floorgen/internal/dungeon"
)

// Environment variables that override file values.
const (
	EnvLogLevel  = "FLOORGEN_LOG_LEVEL"
	EnvRedisAddr = "FLOORGEN_REDIS_ADDR"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with the FLOORGEN_* variables that
// getenv reports as set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = LogLevel(v)
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
	return Validate(c)
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	g := cfg.Generator
	if g.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("generator.max_attempts %d must not be negative", g.MaxAttempts))
	}
	percentages := []struct {
		field string
		value int
	}{
		{"min_reachable_percent", g.MinReachablePercent},
		{"merge_chance", g.MergeChance},
		{"imperfection_chance", g.ImperfectionChance},
		{"structure_chance", g.StructureChance},
		{"trap_visible_chance", g.TrapVisibleChance},
	}
	for _, p := range percentages {
		if p.value < 0 || p.value > 100 {
			errs = append(errs, fmt.Errorf("generator.%s %d is out of range [0, 100]", p.field, p.value))
		}
	}

	if cfg.Cache.MemoryCapacity < 0 {
		errs = append(errs, fmt.Errorf("cache.memory_capacity %d must not be negative", cfg.Cache.MemoryCapacity))
	}
	if cfg.Cache.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.redis.ttl %s must not be negative", cfg.Cache.Redis.TTL))
	}
	if cfg.Cache.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("cache.redis.db %d must not be negative", cfg.Cache.Redis.DB))
	}

	if _, err := cfg.ApplyFloor(dungeon.FloorProperties{}); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ApplyFloor returns props with the floor overrides applied. Keys that are
// not floor properties are rejected.
func (c *Config) ApplyFloor(props dungeon.FloorProperties) (dungeon.FloorProperties, error) {
	if c.Floor.Kind == 0 {
		return props, nil
	}
	raw, err := yaml.Marshal(&c.Floor)
	if err != nil {
		return props, fmt.Errorf("floor: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&props); err != nil {
		return props, &dungeon.ConfigError{Field: "floor", Reason: err.Error()}
	}
	return props, nil
}
