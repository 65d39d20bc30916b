package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "cache:"

// Cache is a TTL-based response cache backed by Redis. A nil *Cache is
// valid and turns every operation into a no-op, so the service can run
// without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// New connects to Redis and verifies the connection with a ping
func New(addr string, ttl time.Duration, log *logrus.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &Cache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Key builds the cache key for a request path and the acting user
func (c *Cache) Key(path, userID string) string {
	return keyPrefix + path + ":" + userID
}

// Get returns the cached payload for key, if present
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Errorf("Failed to read cache key %s: %v", key, err)
		return nil, false
	}
	return payload, true
}

// Set stores payload under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Errorf("Failed to write cache key %s: %v", key, err)
	}
}

// Flush removes every cached response. Write endpoints call this so stale
// aggregates are never served.
func (c *Cache) Flush(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Errorf("Failed to scan cache keys: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Errorf("Failed to flush cache: %v", err)
	}
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
