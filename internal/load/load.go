// Package load implements the load façade (§4.H): dispatching a get on a
// resolved config to the env, in-memory, KV, or database adapter, and
// projecting DB rows back through the config's `map` entry.
package load

import (
	"context"
	"encoding/json"
	"fmt"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/ports"
	"github.com/threatflux/statekit/internal/rconfig"
)

// Facade dispatches load operations by a config's "client" entry. A nil
// adapter for the requested client is an adapter failure, not a miss —
// unlike the store façade, the load tier is the source of truth: if it
// is configured but unreachable, that is load-failed, not "no value".
type Facade struct {
	Env      ports.EnvClient
	InMemory ports.InMemoryClient
	KVS      ports.KVSClient
	Db       ports.DbClient
}

// NewFacade returns a Facade bound to the given adapters. Any of them
// may be nil if the deployment never configures that client kind.
func NewFacade(env ports.EnvClient, inMemory ports.InMemoryClient, kvs ports.KVSClient, db ports.DbClient) *Facade {
	return &Facade{Env: env, InMemory: inMemory, KVS: kvs, Db: db}
}

// Get loads a value per cfg's client. The "map" entries a caller passes
// in must already be stripped to bare field names (§4.J step 6) — this
// façade has no knowledge of the absolute-path form the store tier uses.
func (f *Facade) Get(ctx context.Context, cfg rconfig.Config) (any, error) {
	switch cfg.Client() {
	case "Env":
		return f.getEnv(ctx, cfg)
	case "InMemory":
		return f.getInMemory(ctx, cfg)
	case "KVS":
		return f.getKVS(ctx, cfg)
	case "Db":
		return f.getDb(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported load client %q", kiterrors.ErrLoadFailed, cfg.Client())
	}
}

func (f *Facade) getEnv(ctx context.Context, cfg rconfig.Config) (any, error) {
	if f.Env == nil {
		return nil, fmt.Errorf("%w: no Env adapter bound", kiterrors.ErrLoadFailed)
	}
	fields := cfg.Map("map")
	out := make(map[string]any, len(fields))
	for field, envVar := range fields {
		v, ok, err := f.Env.Get(ctx, envVar)
		if err != nil {
			return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "reading env var %q", envVar)
		}
		if ok {
			out[field] = v
		}
	}
	return out, nil
}

func (f *Facade) getInMemory(ctx context.Context, cfg rconfig.Config) (any, error) {
	if f.InMemory == nil {
		return nil, fmt.Errorf("%w: no InMemory adapter bound", kiterrors.ErrLoadFailed)
	}
	key := cfg.String("key")
	v, ok, err := f.InMemory.Get(ctx, key)
	if err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "load get (InMemory) key %q", key)
	}
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (f *Facade) getKVS(ctx context.Context, cfg rconfig.Config) (any, error) {
	if f.KVS == nil {
		return nil, fmt.Errorf("%w: no KVS adapter bound", kiterrors.ErrLoadFailed)
	}
	key := cfg.String("key")
	raw, ok, err := f.KVS.Get(ctx, key)
	if err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "load get (KVS) key %q", key)
	}
	if !ok {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "decoding KVS payload for key %q", key)
	}
	return v, nil
}

func (f *Facade) getDb(ctx context.Context, cfg rconfig.Config) (any, error) {
	if f.Db == nil {
		return nil, fmt.Errorf("%w: no Db adapter bound", kiterrors.ErrLoadFailed)
	}
	connection, _ := cfg["connection"].(map[string]any)
	table := cfg.String("table")
	where := cfg.String("where")
	fields := cfg.Map("map")

	columns := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, col := range fields {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}

	rows, err := f.Db.Fetch(ctx, connection, table, columns, where)
	if err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "fetching table %q", table)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: query against table %q returned no rows", kiterrors.ErrLoadFailed, table)
	}

	row := rows[0]
	out := make(map[string]any, len(fields))
	for field, col := range fields {
		out[field] = row[col]
	}
	return out, nil
}
