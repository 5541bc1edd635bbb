package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/store"
)

// countingClient wraps a Client and counts Select calls.
type countingClient struct {
	backend.Client
	selects int
}

func (c *countingClient) Select(ctx context.Context, collection string, filter backend.Filter) ([]domain.Row, error) {
	c.selects++
	return c.Client.Select(ctx, collection, filter)
}

func newTestCache(t *testing.T) (*Cache, *countingClient) {
	t.Helper()
	mem := backend.NewMemory()
	_, err := mem.Insert(context.Background(), backend.Houses, []domain.Row{
		{"house_id": "h1", "address": "123 Main St"},
	})
	require.NoError(t, err)

	client := &countingClient{Client: mem}
	return NewCache(client, store.NewMemoryKV(), time.Minute, zap.NewNop()), client
}

func TestCacheReadThrough(t *testing.T) {
	cache, client := newTestCache(t)
	ctx := context.Background()

	rows, err := cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, client.selects)

	// Second unfiltered read is served from the KV.
	rows, err = cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, client.selects)
}

func TestCacheFilteredReadsPassThrough(t *testing.T) {
	cache, client := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := cache.Select(ctx, backend.Houses, backend.Filter{"house_id": "h1"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, client.selects)
}

func TestCacheInvalidate(t *testing.T) {
	cache, client := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, client.selects)

	cache.Invalidate(ctx, backend.Houses)

	_, err = cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, client.selects)
}

func TestCacheSeesWritesAfterInvalidation(t *testing.T) {
	mem := backend.NewMemory()
	ctx := context.Background()
	_, err := mem.Insert(ctx, backend.Houses, []domain.Row{{"house_id": "h1"}})
	require.NoError(t, err)

	cache := NewCache(mem, store.NewMemoryKV(), time.Minute, zap.NewNop())

	rows, err := cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = mem.Insert(ctx, backend.Houses, []domain.Row{{"house_id": "h2"}})
	require.NoError(t, err)

	// Stale until invalidated.
	rows, err = cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	cache.Invalidate(ctx, backend.Houses)
	rows, err = cache.Select(ctx, backend.Houses, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
