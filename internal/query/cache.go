// Package query is the read side: whole-collection fetches cached in a KV
// keyed by collection name, invalidated after each successful mutation.
// This mirrors the client-side query cache the dashboard UI uses.
package query

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/store"
)

const keyPrefix = "cache:"

// Cache is a read-through cache over the backend Client. Only unfiltered
// collection reads are cached; filtered reads pass through, matching how
// the mutation layer re-checks live state.
type Cache struct {
	client backend.Client
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(client backend.Client, kv store.KV, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, kv: kv, ttl: ttl, logger: logger}
}

// Select returns rows for the collection. Unfiltered reads are served
// from the KV when fresh; cache failures degrade to a direct fetch.
func (c *Cache) Select(ctx context.Context, collection string, filter backend.Filter) ([]domain.Row, error) {
	if len(filter) > 0 {
		return c.client.Select(ctx, collection, filter)
	}

	key := keyPrefix + collection
	if raw, err := c.kv.Get(ctx, key); err == nil {
		var rows []domain.Row
		if jsonErr := json.Unmarshal([]byte(raw), &rows); jsonErr == nil {
			return rows, nil
		}
		// Unreadable entry: drop it and fall through to the store.
		_ = c.kv.Del(ctx, key)
	} else if err != store.ErrMiss {
		c.logger.Warn("cache read failed", zap.String("collection", collection), zap.Error(err))
	}

	rows, err := c.client.Select(ctx, collection, nil)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(rows); err == nil {
		if err := c.kv.Set(ctx, key, string(raw), c.ttl); err != nil {
			c.logger.Warn("cache write failed", zap.String("collection", collection), zap.Error(err))
		}
	}
	return rows, nil
}

// Invalidate drops cached reads for the given collections. Mutations call
// this after every successful write so the next read refetches.
func (c *Cache) Invalidate(ctx context.Context, collections ...string) {
	keys := make([]string, 0, len(collections))
	for _, col := range collections {
		keys = append(keys, keyPrefix+col)
	}
	if err := c.kv.Del(ctx, keys...); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("collections", collections), zap.Error(err))
	}
}
