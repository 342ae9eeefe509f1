// Package memstore implements ports.InMemoryClient over
// internal/pool.Compact, giving the reference in-memory adapter delete-
// with-slot-reuse semantics rather than a bare growing map.
package memstore

import (
	"context"

	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/ports"
)

// Client is a process-local key/value store. Values round-trip by
// identity — no serialization boundary.
type Client struct {
	pool *pool.Compact
}

// NewClient returns an empty memstore.Client.
func NewClient() *Client {
	return &Client{pool: pool.NewCompact()}
}

var _ ports.InMemoryClient = (*Client)(nil)

// Get returns key's value, if present.
func (c *Client) Get(_ context.Context, key string) (any, bool, error) {
	v, ok := c.pool.Get(key)
	return v, ok, nil
}

// Set inserts or overwrites key's value.
func (c *Client) Set(_ context.Context, key string, value any) error {
	c.pool.Set(key, value)
	return nil
}

// Delete removes key, freeing its slot for reuse. Reports whether key
// was present.
func (c *Client) Delete(_ context.Context, key string) (bool, error) {
	return c.pool.Delete(key), nil
}
