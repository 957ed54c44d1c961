package mock

import (
	"context"

	"github.com/fwojciec/blocks"
)

// Interface compliance check.
var _ blocks.Cache = (*Cache)(nil)

// Cache is a test double for blocks.Cache.
// Set GetFn and SetFn before calling the corresponding methods.
type Cache struct {
	GetFn func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn func(ctx context.Context, key string, value []byte) error
}

// Get delegates to GetFn.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.GetFn(ctx, key)
}

// Set delegates to SetFn.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	return c.SetFn(ctx, key, value)
}
