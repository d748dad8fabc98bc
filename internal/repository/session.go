package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionPrefix namespaces session markers in the shared Redis keyspace.
const sessionPrefix = "session:"

// RedisSessionCache stores session markers in Redis. Presence of a marker is
// what keeps a login session alive; its TTL is independent of token expiry.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionCache connects to Redis at addr and returns a session cache
// whose markers live for ttl. The connection is verified with a ping.
func NewRedisSessionCache(addr string, ttl time.Duration) (*RedisSessionCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisSessionCache{client: client, ttl: ttl}, nil
}

// Set establishes (or refreshes) the session marker for username.
// Last writer wins; concurrent logins simply refresh the TTL.
func (c *RedisSessionCache) Set(ctx context.Context, username string) error {
	return c.client.Set(ctx, sessionPrefix+username, true, c.ttl).Err()
}

// Exists reports whether a live session marker exists for username.
func (c *RedisSessionCache) Exists(ctx context.Context, username string) (bool, error) {
	n, err := c.client.Exists(ctx, sessionPrefix+username).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete revokes the session marker for username. Deleting an absent
// marker is not an error.
func (c *RedisSessionCache) Delete(ctx context.Context, username string) error {
	return c.client.Del(ctx, sessionPrefix+username).Err()
}

// Close releases the underlying Redis connection.
func (c *RedisSessionCache) Close() error {
	return c.client.Close()
}
