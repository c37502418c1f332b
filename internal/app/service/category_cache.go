package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const categoryCacheGlobalKey = "categories:global"

func categoryCacheOwnerKey(email string) string {
	return "categories:owner:" + email
}

// CategoryCache is a read-through cache over the derived category sets.
// Every post mutation invalidates both the global key and the owner's key,
// so the derived view never goes stale. A nil client means no caching.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{client: client, ttl: ttl}
}

func (c *CategoryCache) Get(ctx context.Context, key string) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []string
	if err := json.Unmarshal(payload, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *CategoryCache) Set(ctx context.Context, key string, categories []string) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(categories)
	if err != nil {
		return
	}
	// Best effort: a failed Set only costs a recompute on the next read.
	c.client.Set(ctx, key, payload, c.ttl)
}

func (c *CategoryCache) Invalidate(ctx context.Context, ownerEmail string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, categoryCacheGlobalKey, categoryCacheOwnerKey(ownerEmail))
}
