package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/rconfig"
	"github.com/threatflux/statekit/internal/record"
)

// Config is an alias for rconfig.Config: the flat map of well-known prop
// names a meta node (_load, _store, or _state) builds down to (§4.F).
type Config = rconfig.Config

// ConfigBuilder builds a Config from a meta node's prop children,
// evaluating every template-holding prop through an Evaluator (§4.E may
// itself re-enter the resolution engine for placeholder tokens).
type ConfigBuilder struct {
	arena *pool.Arena
}

// NewConfigBuilder returns a ConfigBuilder reading prop children from arena.
func NewConfigBuilder(arena *pool.Arena) *ConfigBuilder {
	return &ConfigBuilder{arena: arena}
}

// Build enumerates metaIdx's prop children and evaluates each into the
// returned Config. Failure to evaluate any individual template yields no
// entry for that prop, not an overall failure — the caller treats a
// missing required prop as an error (§4.F).
func (b *ConfigBuilder) Build(ctx context.Context, metaIdx uint16, eval *Evaluator) Config {
	cfg := make(Config)
	metaKey, ok := b.arena.Keys.Get(metaIdx)
	if !ok {
		return cfg
	}
	if metaKey.Client() != record.ClientNone {
		cfg["client"] = metaKey.Client().String()
	}

	for _, childIdx := range b.arena.ChildrenOf(metaIdx) {
		childKey, ok := b.arena.Keys.Get(childIdx)
		if !ok {
			continue
		}
		switch childKey.Prop() {
		case record.PropType:
			cfg["type"] = childKey.Type().String()
		case record.PropMap:
			cfg["map"] = b.buildMap(ctx, childIdx, eval)
		case record.PropKey:
			b.evalInto(ctx, cfg, "key", childKey.Child(), eval)
		case record.PropConnection:
			b.evalInto(ctx, cfg, "connection", childKey.Child(), eval)
		case record.PropTable:
			b.evalInto(ctx, cfg, "table", childKey.Child(), eval)
		case record.PropWhere:
			b.evalInto(ctx, cfg, "where", childKey.Child(), eval)
		case record.PropTTL:
			b.evalTTLInto(ctx, cfg, childKey.Child(), eval)
		}
	}
	return cfg
}

func (b *ConfigBuilder) evalInto(ctx context.Context, cfg Config, name string, tmplIdx uint16, eval *Evaluator) {
	val, err := eval.Eval(ctx, tmplIdx)
	if err != nil {
		return
	}
	cfg[name] = val
}

func (b *ConfigBuilder) evalTTLInto(ctx context.Context, cfg Config, tmplIdx uint16, eval *Evaluator) {
	val, err := eval.Eval(ctx, tmplIdx)
	if err != nil {
		return
	}
	switch v := val.(type) {
	case int64:
		cfg["ttl"] = v
	case int:
		cfg["ttl"] = int64(v)
	case float64:
		cfg["ttl"] = int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg["ttl"] = n
		}
	}
}

// buildMap walks a `map` prop's entry children, producing an object
// whose keys are the entry's absolute dotted path and whose values are
// the literal column/env-var names.
func (b *ConfigBuilder) buildMap(ctx context.Context, mapIdx uint16, eval *Evaluator) map[string]string {
	out := make(map[string]string)
	for _, entryIdx := range b.arena.ChildrenOf(mapIdx) {
		entryKey, ok := b.arena.Keys.Get(entryIdx)
		if !ok || !entryKey.IsPath() {
			continue
		}
		segIdxs, ok := b.arena.Path.Get(entryKey.Dynamic())
		if !ok {
			continue
		}
		segs := make([]string, len(segIdxs))
		for i, si := range segIdxs {
			s, _ := b.arena.Dynamic.Get(si)
			segs[i] = s
		}
		absPath := strings.Join(segs, ".")

		val, err := eval.Eval(ctx, entryKey.Child())
		if err != nil {
			continue
		}
		colName, _ := val.(string)
		out[absPath] = colName
	}
	return out
}
