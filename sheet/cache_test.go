package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyhq/resty/core"
)

// countingSource tracks how often the wrapped source is hit.
type countingSource struct {
	records []core.Restaurant
	err     error
	calls   int
}

func (c *countingSource) Fetch(ctx context.Context) ([]core.Restaurant, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

func newCacheUnderTest(t *testing.T, src Source) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(src, client)
}

func TestCache_PopulatesAndServes(t *testing.T) {
	src := &countingSource{records: []core.Restaurant{{ID: "1", Name: "Il Forno"}}}
	cache := newCacheUnderTest(t, src)

	first, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	second, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "second fetch must be served from cache")
}

func TestCache_SourceErrorPropagates(t *testing.T) {
	src := &countingSource{err: errors.New("sheet down")}
	cache := newCacheUnderTest(t, src)

	_, err := cache.Fetch(context.Background())
	assert.Error(t, err)
}

func TestCache_RedisDownDegradesToSource(t *testing.T) {
	src := &countingSource{records: []core.Restaurant{{ID: "1"}}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(src, client)
	records, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
