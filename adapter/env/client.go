// Package env implements ports.EnvClient over the process environment.
package env

import (
	"context"
	"os"

	"github.com/threatflux/statekit/internal/ports"
)

// Client reads environment variables via os.LookupEnv. It holds no
// state and is safe for concurrent use.
type Client struct{}

// NewClient returns an env.Client.
func NewClient() *Client { return &Client{} }

var _ ports.EnvClient = (*Client)(nil)

// Get reports name's value, if set.
func (c *Client) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := os.LookupEnv(name)
	return v, ok, nil
}
