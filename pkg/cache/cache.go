// Package cache provides a Redis-backed read cache for dashboard and
// analytics aggregates.
//
// The cache is strictly best-effort: when Redis is unreachable every
// operation degrades to a no-op, so the dashboard keeps working straight
// off SQLite. Mutations through the CRUD executor call Del on the keys of
// any aggregate that could reflect the changed table.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client. The zero value (or a failed Connect) is safe
// to use: Get always misses, Set and Del do nothing.
type Cache struct {
	rdb *redis.Client
	ctx context.Context
}

// Connect initialises the Redis client and verifies it with a ping.
// On error the returned Cache is still usable as a no-op.
func Connect(addr, password string) (*Cache, error) {
	c := &Cache{ctx: context.Background()}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(c.ctx).Err(); err != nil {
		return c, fmt.Errorf("cache: redis ping: %w", err)
	}

	c.rdb = rdb
	return c, nil
}

// Disabled returns a Cache that never stores anything. Used in tests and
// when Redis is not configured.
func Disabled() *Cache {
	return &Cache{ctx: context.Background()}
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func (c *Cache) Get(key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	val, err := c.rdb.Get(c.ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value under key for the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(c.ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func (c *Cache) Del(keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(c.ctx, keys...).Err()
}
