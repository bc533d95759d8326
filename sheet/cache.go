package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
)

// CacheOptions configure the Redis table cache.
type CacheOptions struct {
	Key    string
	TTL    time.Duration
	Logger logging.Logger
}

// Cache decorates a Source with a Redis-backed table cache. The sheet
// changes rarely compared to chat traffic, so one fetch can serve every
// session started within the TTL. Cache failures degrade to the wrapped
// source; only the source itself can make Fetch fail.
type Cache struct {
	source Source
	client *redis.Client
	opts   CacheOptions
}

// NewCache wraps a source with a cache on an existing Redis client.
func NewCache(source Source, client *redis.Client, optFns ...func(o *CacheOptions)) *Cache {
	opts := CacheOptions{
		Key:    "resty:restaurants",
		TTL:    time.Hour,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Cache{source: source, client: client, opts: opts}
}

// Fetch implements Source.
func (c *Cache) Fetch(ctx context.Context) ([]core.Restaurant, error) {
	raw, err := c.client.Get(ctx, c.opts.Key).Result()
	if err == nil {
		var records []core.Restaurant
		if jsonErr := json.Unmarshal([]byte(raw), &records); jsonErr == nil && len(records) > 0 {
			return records, nil
		}
		c.opts.Logger.Warn("cached restaurant table unreadable, refetching")
	} else if !errors.Is(err, redis.Nil) {
		c.opts.Logger.Warn("restaurant cache read failed", "error", err)
	}

	records, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(records); err == nil {
		if err := c.client.Set(ctx, c.opts.Key, raw, c.opts.TTL).Err(); err != nil {
			c.opts.Logger.Warn("restaurant cache write failed", "error", err)
		}
	}
	return records, nil
}
