package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"printerstore/pkg/domain"
)

const catalogCacheKey = "printerstore:catalog:all"

// catalogCache keeps the unfiltered product listing in redis. Every
// operation is best-effort: redis failures are logged and callers fall
// through to the database.
type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newCatalogCache(addr, password string, ttl time.Duration) *catalogCache {
	return &catalogCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (c *catalogCache) get(ctx context.Context) ([]domain.Product, bool) {
	if c == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	raw, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("catalog_cache_get_failed", "error", err)
		}
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		slog.Warn("catalog_cache_decode_failed", "error", err)
		return nil, false
	}
	return products, true
}

func (c *catalogCache) set(ctx context.Context, products []domain.Product) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, catalogCacheKey, raw, c.ttl).Err(); err != nil {
		slog.Warn("catalog_cache_set_failed", "error", err)
	}
}

func (c *catalogCache) invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		slog.Warn("catalog_cache_invalidate_failed", "error", err)
	}
}
