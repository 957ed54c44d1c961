// Package redis caches rendered documents in Redis.
package redis

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/blocks"
	backend "github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"
)

// DefaultNamespace is prepended to every key.
const DefaultNamespace = "blocks:render:"

// Interface compliance check.
var _ blocks.Cache = (*Cache)(nil)

// Cache implements blocks.Cache on a Redis client.
type Cache struct {
	client    *backend.Client
	namespace string
	ttl       time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the expiration for cached entries. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithNamespace sets the key namespace.
func WithNamespace(namespace string) Option {
	return func(c *Cache) {
		c.namespace = namespace
	}
}

// New creates a cache connected to the Redis server at addr.
func New(addr string, opts ...Option) *Cache {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client:    client,
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. A missing key is not an error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.namespace+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Key returns the cache key for a document rendered with the component
// prefix. Variant names the output format and any options that change its
// bytes. The key is the hex BLAKE3 digest of the three inputs.
func Key(variant, prefix string, doc []byte) string {
	h := blake3.New()
	// NUL separators keep ("ab", "c") and ("a", "bc") apart.
	_, _ = h.Write([]byte(variant))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(prefix))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(doc)
	return hex.EncodeToString(h.Sum(nil))
}
