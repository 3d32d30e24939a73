package libs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a JSON read-through cache over Redis. A nil *Cache, or one built
// without a client, misses every read and ignores every write.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("lib", "cache").Logger(),
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.enabled() {
		return false
	}

	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
	}
}
