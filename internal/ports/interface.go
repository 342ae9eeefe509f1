// Package ports defines the four capability sets the resolution engine
// consumes. The engine never imports adapter implementations directly;
// it is wired against these interfaces so callers can substitute any
// type satisfying them. Adapters must not call back into the engine —
// doing so would defeat the recursion bound the engine enforces on
// itself.
package ports

import "context"

// EnvClient reads environment-style string variables. Get returns
// ("", false) for an unset variable; it has no side effects.
type EnvClient interface {
	Get(ctx context.Context, name string) (string, bool, error)
}

// InMemoryClient is a process-local key/value store with no
// serialization boundary: values round-trip by identity.
type InMemoryClient interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) (bool, error)
}

// KVSClient is a string-keyed, string-valued store with an optional
// per-entry TTL. Callers encode/decode payloads (typically JSON) on
// either side of Get/Set; the client itself moves opaque strings.
type KVSClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttlSeconds int64) error
	Delete(ctx context.Context, key string) (bool, error)
}

// DbClient fetches rows by table/column/where projection. connection
// carries whatever shape the adapter needs (already template-resolved
// by the time the engine calls Fetch); where may be empty. Fetch must
// not re-enter the engine.
type DbClient interface {
	Fetch(ctx context.Context, connection map[string]any, table string, columns []string, where string) ([]map[string]any, error)
}
