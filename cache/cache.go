// Package cache provides a generic Redis-backed cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache defines a general caching interface
type ICache[T any] interface {
	Get(context.Context, string) (*T, error)
	Set(context.Context, string, *T, ...time.Duration) error
	Delete(context.Context, string) error
	Exists(context.Context, string) (bool, error)
	TTL(context.Context, string) (time.Duration, error)
}

// Cache implements the ICache interface
type Cache[T any] struct {
	rc  *redis.Client
	key string
}

// NewCache creates a new Cache instance
func NewCache[T any](rc *redis.Client, key string) *Cache[T] {
	return &Cache[T]{
		rc:  rc,
		key: key,
	}
}

// Key defines the cache key
func (c *Cache[T]) Key(field string) string {
	if c.key != "" {
		return fmt.Sprintf("%s:%s", c.key, field)
	}
	return field
}

// Get retrieves a single item from cache
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if c.rc == nil {
		return nil, errors.New("redis client is nil, cannot get cache")
	}

	result, err := c.rc.Get(ctx, c.Key(field)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err = json.Unmarshal([]byte(result), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a single item into cache
func (c *Cache[T]) Set(ctx context.Context, field string, data *T, expire ...time.Duration) error {
	if c.rc == nil {
		return errors.New("redis client is nil, cannot set cache")
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	exp := time.Duration(0)
	if len(expire) > 0 {
		exp = expire[0]
	}
	if err := c.rc.Set(ctx, c.Key(field), bytes, exp).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete removes a single item from cache
func (c *Cache[T]) Delete(ctx context.Context, field string) error {
	if c.rc == nil {
		return errors.New("redis client is nil, cannot delete cache")
	}

	if err := c.rc.Del(ctx, c.Key(field)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Exists checks whether a key exists in cache
func (c *Cache[T]) Exists(ctx context.Context, field string) (bool, error) {
	if c.rc == nil {
		return false, errors.New("redis client is nil, cannot check cache")
	}

	n, err := c.rc.Exists(ctx, c.Key(field)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cache: %w", err)
	}
	return n > 0, nil
}

// TTL returns the remaining time to live of a key
func (c *Cache[T]) TTL(ctx context.Context, field string) (time.Duration, error) {
	if c.rc == nil {
		return 0, errors.New("redis client is nil, cannot get ttl")
	}

	ttl, err := c.rc.TTL(ctx, c.Key(field)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get ttl: %w", err)
	}
	return ttl, nil
}
