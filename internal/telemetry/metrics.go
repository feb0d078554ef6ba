package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/samdwyer/floorgen"

// Metrics holds the metric instruments recorded during floor generation.
// All fields are safe for concurrent use.
type Metrics struct {
	// Attempts counts layout attempts, including failed ones.
	Attempts metric.Int64Counter

	// Floors counts finished floors. Use with attribute.String("outcome", ...)
	// set to "success" or "hard_fail".
	Floors metric.Int64Counter

	// Duration tracks wall time per floor in seconds.
	Duration metric.Float64Histogram

	// Spawns counts chosen spawn tiles. Use with attribute.String("category", ...).
	Spawns metric.Int64Counter

	// CacheLookups counts floor cache reads. Use with attribute.Bool("hit", ...).
	CacheLookups metric.Int64Counter
}

var durationBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25,
}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Attempts, err = m.Int64Counter("floorgen.generation.attempts",
		metric.WithDescription("Layout attempts made while generating floors."),
	); err != nil {
		return nil, err
	}
	if met.Floors, err = m.Int64Counter("floorgen.generation.floors",
		metric.WithDescription("Generated floors by outcome."),
	); err != nil {
		return nil, err
	}
	if met.Duration, err = m.Float64Histogram("floorgen.generation.duration",
		metric.WithDescription("Time spent generating one floor."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Spawns, err = m.Int64Counter("floorgen.generation.spawns",
		metric.WithDescription("Spawn tiles chosen by category."),
	); err != nil {
		return nil, err
	}
	if met.CacheLookups, err = m.Int64Counter("floorgen.cache.lookups",
		metric.WithDescription("Floor cache lookups by hit or miss."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// DefaultMetrics builds instruments on the global meter provider.
func DefaultMetrics() (*Metrics, error) {
	return NewMetrics(otel.GetMeterProvider())
}

// RecordFloor records one finished floor. A nil receiver is a no-op.
func (m *Metrics) RecordFloor(ctx context.Context, attempts int, hardFail bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if hardFail {
		outcome = "hard_fail"
	}
	m.Attempts.Add(ctx, int64(attempts))
	m.Floors.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.Duration.Record(ctx, seconds)
}

// RecordSpawns adds n spawns of a category. A nil receiver is a no-op.
func (m *Metrics) RecordSpawns(ctx context.Context, category string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Spawns.Add(ctx, int64(n), metric.WithAttributes(attribute.String("category", category)))
}

// RecordCacheLookup counts one cache read. A nil receiver is a no-op.
func (m *Metrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	m.CacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}
