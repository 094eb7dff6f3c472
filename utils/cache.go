package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

// NewRedisClient connects a Redis client and verifies it with a ping.
// Callers own the client; one is created per logical DB.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// DetailCacheKey names the cached detail response for one record, e.g.
// "place:detail:<id>". Writers that touch the record, including rating
// recomputation, delete this key.
func DetailCacheKey(kind, id string) string {
	return kind + ":detail:" + id
}

// Cache is a thin JSON cache over Redis used for detail responses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a Redis client with a default TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads key into v. Returns ErrCacheMiss when absent.
func (c *Cache) GetJSON(key string, v interface{}) error {
	ctx := context.Background()
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return json.Unmarshal([]byte(data), v)
}

// SetJSON stores v under key with the default TTL.
func (c *Cache) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	ctx := context.Background()
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Delete drops keys from the cache. Used on update/soft-delete so
// detail reads never serve a stale record.
func (c *Cache) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx := context.Background()
	return c.client.Del(ctx, keys...).Err()
}
