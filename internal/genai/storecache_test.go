package genai

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestFindGroceryStoresUsesCache(t *testing.T) {
	gen := &fakeGenerator{chunks: []GroundingChunk{
		{Maps: &GroundingSource{URI: "https://maps.example/1", Title: "Fresh Market"}},
	}}
	p := NewPlanner(gen,
		WithMetrics(MustNewMetrics(prometheus.NewRegistry())),
		WithStoreCache(4, time.Minute),
	)

	first := p.FindGroceryStores(context.Background(), 52.52001, 13.40499)
	second := p.FindGroceryStores(context.Background(), 52.52003, 13.40502)
	require.Equal(t, first, second)
	require.Len(t, gen.prompts, 1)

	p.FindGroceryStores(context.Background(), 48.85, 2.35)
	require.Len(t, gen.prompts, 2)
}

func TestStoreCacheExpiresAndSkipsEmpty(t *testing.T) {
	cache, err := newStoreCache(0, time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.put(1, 2, nil)
	_, ok := cache.get(1, 2)
	require.False(t, ok)

	gen := &fakeGenerator{chunks: []GroundingChunk{{Web: &GroundingSource{URI: "https://grocer.example", Title: "Grocer"}}}}
	stores := newTestPlanner(gen).FindGroceryStores(context.Background(), 1, 2)
	cache.put(1, 2, stores)

	cached, ok := cache.get(1, 2)
	require.True(t, ok)
	require.Equal(t, stores, cached)

	now = now.Add(2 * time.Minute)
	_, ok = cache.get(1, 2)
	require.False(t, ok)

	var disabled *storeCache
	_, ok = disabled.get(1, 2)
	require.False(t, ok)
}
