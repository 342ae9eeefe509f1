// Package store implements the store façade (§4.G): dispatching
// get/set/delete on a resolved config to the bound in-memory or KVS
// adapter. Any other client value is "no store", not an error.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/ports"
	"github.com/threatflux/statekit/internal/rconfig"
)

// Facade dispatches store operations by a config's "client" entry.
// Adapters are optional: with a nil InMemory/KVS client, Get and Delete
// report "no store" for configs naming that client rather than
// panicking, and Set reports ErrStoreFailed.
type Facade struct {
	InMemory ports.InMemoryClient
	KVS      ports.KVSClient
}

// NewFacade returns a Facade bound to the given adapters.
func NewFacade(inMemory ports.InMemoryClient, kvs ports.KVSClient) *Facade {
	return &Facade{InMemory: inMemory, KVS: kvs}
}

// Get reads cfg's key from the bound adapter. found=false, err=nil means
// a clean miss (§7 band 2); a non-nil err is an adapter failure (band 3).
func (f *Facade) Get(ctx context.Context, cfg rconfig.Config) (value any, found bool, err error) {
	key := cfg.String("key")
	switch cfg.Client() {
	case "InMemory":
		if f.InMemory == nil {
			return nil, false, nil
		}
		v, ok, err := f.InMemory.Get(ctx, key)
		if err != nil {
			return nil, false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store get (InMemory) key %q", key)
		}
		return v, ok, nil

	case "KVS":
		if f.KVS == nil {
			return nil, false, nil
		}
		raw, ok, err := f.KVS.Get(ctx, key)
		if err != nil {
			return nil, false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store get (KVS) key %q", key)
		}
		if !ok {
			return nil, false, nil
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "decoding KVS payload for key %q", key)
		}
		return v, true, nil

	default:
		return nil, false, nil
	}
}

// Set writes value under cfg's key via the bound adapter. ttl is only
// meaningful for KVS.
func (f *Facade) Set(ctx context.Context, cfg rconfig.Config, value any) (bool, error) {
	key := cfg.String("key")
	switch cfg.Client() {
	case "InMemory":
		if f.InMemory == nil {
			return false, fmt.Errorf("%w: no InMemory adapter bound", kiterrors.ErrStoreFailed)
		}
		if err := f.InMemory.Set(ctx, key, value); err != nil {
			return false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store set (InMemory) key %q", key)
		}
		return true, nil

	case "KVS":
		if f.KVS == nil {
			return false, fmt.Errorf("%w: no KVS adapter bound", kiterrors.ErrStoreFailed)
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "encoding KVS payload for key %q", key)
		}
		if err := f.KVS.Set(ctx, key, string(payload), cfg.TTL()); err != nil {
			return false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store set (KVS) key %q", key)
		}
		return true, nil

	default:
		return false, nil
	}
}

// Delete removes cfg's key via the bound adapter.
func (f *Facade) Delete(ctx context.Context, cfg rconfig.Config) (bool, error) {
	key := cfg.String("key")
	switch cfg.Client() {
	case "InMemory":
		if f.InMemory == nil {
			return false, nil
		}
		ok, err := f.InMemory.Delete(ctx, key)
		if err != nil {
			return false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store delete (InMemory) key %q", key)
		}
		return ok, nil

	case "KVS":
		if f.KVS == nil {
			return false, nil
		}
		ok, err := f.KVS.Delete(ctx, key)
		if err != nil {
			return false, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "store delete (KVS) key %q", key)
		}
		return ok, nil

	default:
		return false, nil
	}
}
