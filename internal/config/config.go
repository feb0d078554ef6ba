// Package config provides the configuration schema and loader for floorgen.
package config

import (
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/store"
	"github.com/samdwyer/floorgen/internal/telemetry"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l onto slog. Unknown and empty levels are info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root configuration structure for floorgen.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	LogLevel  LogLevel          `yaml:"log_level"`
	Generator generator.Options `yaml:"generator"`
	Cache     CacheConfig       `yaml:"cache"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`

	// Floor overrides individual floor properties of every catalog floor,
	// using the same keys as the dungeon data files.
	Floor yaml.Node `yaml:"floor"`
}

// CacheConfig selects the floor cache tiers. Redis is used only when
// Redis.Addr is set.
type CacheConfig struct {
	// MemoryCapacity is how many floors the in-process LRU keeps. Zero
	// disables it.
	MemoryCapacity int                `yaml:"memory_capacity"`
	Redis          store.RedisOptions `yaml:"redis"`
}

// TelemetryConfig holds the exporter switches and the metrics listener.
type TelemetryConfig struct {
	telemetry.Config `yaml:",inline"`

	// MetricsAddr is where `floorgen serve` exposes /metrics when it differs
	// from the API address.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  LogInfo,
		Generator: generator.DefaultOptions(),
		Cache: CacheConfig{
			MemoryCapacity: 64,
			Redis: store.RedisOptions{
				TTL: 24 * time.Hour,
			},
		},
	}
}
