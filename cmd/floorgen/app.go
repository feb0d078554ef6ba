package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/floorgen/internal/config"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/store"
	"github.com/samdwyer/floorgen/internal/telemetry"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

// app holds what every subcommand needs. It is built in setup.
var app struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *gamedata.Catalog
	metrics   *telemetry.Metrics
	generator *generator.Generator
	loader    *store.Loader
	closers   []func(context.Context) error
}

func setup(cmd *cobra.Command, _ []string) error {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}
	setupOTelEnv()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = config.LogLevel(logLevel)
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	if cmd == serveCmd {
		cfg.Telemetry.Prometheus = true
	}
	app.cfg = cfg

	out, err := logOutput(cmd)
	if err != nil {
		return err
	}
	app.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel.Level()}))
	slog.SetDefault(app.logger)

	shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry.Config)
	if err != nil {
		// Not fatal - generation still works
		app.logger.Warn("telemetry setup failed, running without observability", "error", err)
	} else {
		app.closers = append(app.closers, shutdown)
	}

	if app.metrics, err = telemetry.DefaultMetrics(); err != nil {
		app.logger.Warn("metrics unavailable", "error", err)
	}

	if app.catalog, err = gamedata.LoadCatalog(); err != nil {
		return err
	}

	opts := cfg.Generator
	opts.Logger = app.logger
	opts.Metrics = app.metrics
	app.generator = generator.New(opts)

	cache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	app.loader = &store.Loader{
		Cache:     cache,
		Generator: app.generator,
		Metrics:   app.metrics,
		Logger:    app.logger,
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i](ctx))
	}
	return errors.Join(errs...)
}

// logOutput picks the log destination. The preview screen owns the
// terminal, so it only logs to a file.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		app.closers = append(app.closers, func(context.Context) error { return f.Close() })
		return f, nil
	}
	if cmd == previewCmd {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// openCache builds the configured cache tiers; nil means no caching.
func openCache(cfg config.CacheConfig) (store.Cache, error) {
	var next store.Cache
	if cfg.Redis.Addr != "" {
		client, err := store.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return client.Close() })

		next, err = store.NewRedisCache(&store.RedisConfig{
			Client: client,
			TTL:    cfg.Redis.TTL,
			Prefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
	}
	if cfg.MemoryCapacity > 0 {
		return store.NewMemoryCache(cfg.MemoryCapacity, next), nil
	}
	return next, nil
}

// setupOTelEnv maps the Honeycomb variables onto the standard OTLP ones.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_FLOORGEN_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_FLOORGEN_DATASET")
	if dataset == "" {
		dataset = "floorgen"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
