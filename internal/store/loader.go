package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/telemetry"
)

// FloorGenerator produces floors. *generator.Generator implements it.
type FloorGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Floor, error)
}

// Loader serves floors from a cache and generates the ones it misses.
// Cache failures are logged and never fail a request.
type Loader struct {
	Cache     Cache
	Generator FloorGenerator
	Metrics   *telemetry.Metrics
	Logger    *slog.Logger
}

// Load returns the floor for req and whether it came from the cache.
func (l *Loader) Load(ctx context.Context, req generator.Request) (*generator.Floor, bool, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	key, err := KeyFor(req)
	if err != nil {
		return nil, false, err
	}

	if l.Cache != nil {
		f, err := l.Cache.Get(ctx, key)
		switch {
		case err == nil:
			l.Metrics.RecordCacheLookup(ctx, true)
			return f, true, nil
		case errors.Is(err, ErrNotFound):
			l.Metrics.RecordCacheLookup(ctx, false)
		default:
			l.Metrics.RecordCacheLookup(ctx, false)
			logger.Warn("floor cache read failed", "key", key, "error", err)
		}
	}

	f, err := l.Generator.Generate(ctx, req)
	if err != nil {
		return nil, false, err
	}

	// Fallback floors are not worth keeping; the next request retries.
	if l.Cache != nil && !f.Result.HardFail {
		if err := l.Cache.Put(ctx, key, f); err != nil {
			logger.Warn("floor cache write failed", "key", key, "error", err)
		}
	}
	return f, false, nil
}
