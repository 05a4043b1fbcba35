package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskhub/internal/logger"
)

// namespace prefixes every key so the instance can share a redis database
// with other deployments.
const namespace = "taskhub"

// Key builds a namespaced cache key, e.g. Key("user", id) -> "taskhub:user:<id>".
func Key(parts ...string) string {
	return namespace + ":" + strings.Join(parts, ":")
}

// Client wraps redis.Client but fails safe: connectivity errors degrade to
// cache misses instead of surfacing. A nil Client behaves like an always-miss
// cache, which keeps services constructible without redis in tests.
type Client struct {
	client *redis.Client
	log    *zap.Logger
}

// New connects a fail-safe redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts), log: logger.Named("cache")}
}

// Get returns the value, or nil when the key is missing or redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.log.Warn("cache get degraded to miss", zap.String("key", key), logger.Err(err))
		return nil, nil
	}
	return res, nil
}

// Set stores a value with TTL, swallowing redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("cache set dropped", zap.String("key", key), logger.Err(err))
	}
	return nil
}

// Delete removes a key, swallowing redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache delete dropped", zap.String("key", key), logger.Err(err))
	}
	return nil
}
