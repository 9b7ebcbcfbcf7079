// Package cache keeps the public catalog listings (courses, branches,
// subjects) in Redis for a short TTL so repeated page loads do not hammer
// the tenant API. Caching is best-effort and optional: with no Redis
// address configured every lookup is a miss and writes are no-ops.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/centerplus/centerplus-landing/gateway/internal/config"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
)

const keyPrefix = "landing:catalog:"

// Lists is the catalog cache.
type Lists struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New connects to Redis when an address is configured. A failed ping
// disables caching rather than failing startup.
func New(cfg config.RedisConfig, log *logger.Logger) *Lists {
	lists := &Lists{
		ttl: time.Duration(cfg.TTLSeconds) * time.Second,
		log: log,
	}
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, catalog caching disabled")
		return lists
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, catalog caching disabled", "addr", cfg.Addr, "error", err)
		return lists
	}

	lists.rdb = rdb
	log.Info("catalog caching enabled", "addr", cfg.Addr, "ttl", lists.ttl)
	return lists
}

// Enabled reports whether a Redis connection backs the cache.
func (c *Lists) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Key builds the cache key for a listing name.
func Key(name string) string {
	return keyPrefix + name
}

// Get loads a cached listing into dest. false means miss (or disabled).
func (c *Lists) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// Set stores a listing with the configured TTL. Failures are logged, not
// surfaced; the page already has fresh data in hand.
func (c *Lists) Set(ctx context.Context, key string, value interface{}) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
}
