package store_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/store"
	"github.com/samdwyer/floorgen/internal/store/mock"
	"github.com/samdwyer/floorgen/internal/telemetry"
)

type countingGenerator struct {
	calls int
	floor *generator.Floor
	err   error
}

func (g *countingGenerator) Generate(_ context.Context, _ generator.Request) (*generator.Floor, error) {
	g.calls++
	return g.floor, g.err
}

func request() generator.Request {
	return generator.Request{
		Properties: dungeon.FloorProperties{
			Layout:      dungeon.LayoutSmall,
			Rooms:       2,
			FloorNumber: 1,
		},
		Restriction: dungeon.DefaultRestriction(),
		Seed:        11,
	}
}

func TestLoaderHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	gen := &countingGenerator{}

	cached := &generator.Floor{Result: generator.GenerationResult{ID: "cached"}}
	key, err := store.KeyFor(request())
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), key).Return(cached, nil)

	l := &store.Loader{Cache: cache, Generator: gen}
	f, hit, err := l.Load(t.Context(), request())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, cached, f)
	assert.Equal(t, 0, gen.calls)
}

func TestLoaderMissStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	fresh := &generator.Floor{Result: generator.GenerationResult{ID: "fresh"}}
	gen := &countingGenerator{floor: fresh}

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound)
	cache.EXPECT().Put(gomock.Any(), gomock.Any(), fresh).Return(nil)

	l := &store.Loader{Cache: cache, Generator: gen}
	f, hit, err := l.Load(t.Context(), request())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Same(t, fresh, f)
	assert.Equal(t, 1, gen.calls)
}

func TestLoaderSkipsFallbackFloors(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	fallback := &generator.Floor{Result: generator.GenerationResult{HardFail: true}}
	gen := &countingGenerator{floor: fallback}

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound)

	l := &store.Loader{Cache: cache, Generator: gen}
	_, _, err := l.Load(t.Context(), request())
	require.NoError(t, err)
}

func TestLoaderSurvivesCacheFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCache(ctrl)
	fresh := &generator.Floor{}
	gen := &countingGenerator{floor: fresh}

	down := errors.New("connection refused")
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, down)
	cache.EXPECT().Put(gomock.Any(), gomock.Any(), fresh).Return(down)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l := &store.Loader{Cache: cache, Generator: gen, Logger: logger}
	f, hit, err := l.Load(t.Context(), request())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Same(t, fresh, f)
	assert.Contains(t, buf.String(), "floor cache read failed")
	assert.Contains(t, buf.String(), "floor cache write failed")
}

func TestLoaderPropagatesGeneratorErrors(t *testing.T) {
	gen := &countingGenerator{err: dungeon.ErrInvalidConfig}

	l := &store.Loader{Generator: gen}
	_, _, err := l.Load(t.Context(), request())
	assert.True(t, errors.Is(err, dungeon.ErrInvalidConfig))
}

func TestLoaderRecordsLookups(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewMetrics(mp)
	require.NoError(t, err)

	gen := &countingGenerator{floor: &generator.Floor{}}
	l := &store.Loader{Cache: store.NewMemoryCache(4, nil), Generator: gen, Metrics: metrics}

	for range 3 {
		_, _, err := l.Load(t.Context(), request())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, gen.calls)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	hits := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "floorgen.cache.lookups" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("hit"))
				hits[v.Emit()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"true": 2, "false": 1}, hits)
}
