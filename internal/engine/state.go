// Package engine implements the resolution engine (§4.I, §4.J): the
// state value cache, the placeholder/template evaluator, the config
// builder, and State — the public get/set/delete/exists surface that
// orchestrates the cache → store → load cascade with recursion and
// cycle guards.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/manifest"
	"github.com/threatflux/statekit/internal/metrics"
	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/rconfig"
	"github.com/threatflux/statekit/internal/record"
	"github.com/threatflux/statekit/pkg/logger"
)

// StoreFacade is the subset of the store façade (§4.G) State depends on.
type StoreFacade interface {
	Get(ctx context.Context, cfg rconfig.Config) (value any, found bool, err error)
	Set(ctx context.Context, cfg rconfig.Config, value any) (bool, error)
	Delete(ctx context.Context, cfg rconfig.Config) (bool, error)
}

// LoadFacade is the subset of the load façade (§4.H) State depends on.
type LoadFacade interface {
	Get(ctx context.Context, cfg rconfig.Config) (any, error)
}

// State is the public resolution engine (§4.J): get/set/delete/exists
// over a tree of manifest files, backed by a store façade, a load
// façade, and a per-instance state-value cache.
type State struct {
	manifestStore *manifest.Store
	arena         *pool.Arena
	cb            *ConfigBuilder
	eval          *Evaluator
	storeFacade   StoreFacade
	loadFacade    LoadFacade

	mu    sync.Mutex
	cache *stateCache
	inFlight map[string]bool

	recursionLimit int
	log            logger.Logger
	metrics        metrics.Collector
}

// New returns a State rooted at manifestDir, wired to the given store
// and load façades. recursionLimit bounds both cycle-free fan-out depth
// and true cycles (§4.J "depth limit guards against deep fan-out even
// without cycles"). log and metricsCollector may be nil, in which case
// a no-op logger/collector is used.
func New(manifestDir string, storeFacade StoreFacade, loadFacade LoadFacade, recursionLimit int, log logger.Logger, metricsCollector metrics.Collector) *State {
	arena := pool.NewArena()
	if metricsCollector == nil {
		metricsCollector = metrics.NoopCollector{}
	}
	s := &State{
		manifestStore:  manifest.NewStore(manifestDir, arena),
		arena:          arena,
		cb:             NewConfigBuilder(arena),
		storeFacade:    storeFacade,
		loadFacade:     loadFacade,
		cache:          newStateCache(),
		inFlight:       make(map[string]bool),
		recursionLimit: recursionLimit,
		log:            log,
		metrics:        metricsCollector,
	}
	s.eval = NewEvaluator(arena, s.evalGet)
	return s
}

// evalGet adapts get to the GetFunc shape the evaluator re-enters on a
// placeholder token (§4.E "Template→state callback").
func (s *State) evalGet(ctx context.Context, key string) (any, bool, error) {
	return s.get(ctx, key)
}

// Get resolves key, returning (nil, nil) when no value is defined —
// distinct from a non-nil error (§6 "a successful call returning 'no
// value' is null... and is distinct from an error").
func (s *State) Get(ctx context.Context, key string) (any, error) {
	v, found, err := s.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return v, nil
}

func (s *State) get(ctx context.Context, key string) (value any, found bool, err error) {
	start := time.Now()
	outcome := "error"
	defer func() { s.metrics.RecordResolution(outcome, time.Since(start)) }()

	if err := s.enterRecursion(key); err != nil {
		s.metrics.RecordRecursionLimitExceeded()
		return nil, false, err
	}
	defer s.exitRecursion(key)

	file, path := splitKey(key)
	keyIdx, ok, err := s.manifestStore.Find(file, path)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", kiterrors.ErrKeyNotFound, key)
	}

	if v, hit := s.cacheGet(keyIdx); hit {
		s.metrics.RecordCacheAccess(true)
		outcome = "cache_hit"
		return v, true, nil
	}
	s.metrics.RecordCacheAccess(false)

	ms, ok, err := s.manifestStore.GetMeta(file, path)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", kiterrors.ErrKeyNotFound, key)
	}

	if ms.Load != 0 {
		if loadKey, ok := s.arena.Keys.Get(ms.Load); ok && loadKey.Client() == record.ClientState {
			v, err := s.evalStateProjection(ctx, ms.Load)
			if err != nil {
				return nil, false, err
			}
			s.cacheUpdate(keyIdx, v)
			outcome = "load_hit"
			return v, true, nil
		}
	}

	if ms.Store != 0 {
		storeCfg := s.cb.Build(ctx, ms.Store, s.eval)
		v, hit, err := s.storeFacade.Get(ctx, storeCfg)
		if err != nil {
			s.metrics.RecordStoreOp(storeCfg.Client(), false)
			return nil, false, err
		}
		s.metrics.RecordStoreOp(storeCfg.Client(), true)
		if hit {
			s.cacheUpdate(keyIdx, v)
			outcome = "store_hit"
			return v, true, nil
		}
	}

	if ms.Load == 0 {
		outcome = "miss"
		return nil, false, nil
	}
	loadCfg := s.cb.Build(ctx, ms.Load, s.eval)
	if loadCfg.Client() == "" {
		outcome = "miss"
		return nil, false, nil
	}

	v, err := s.loadFacade.Get(ctx, stripMapToBareNames(loadCfg))
	if err != nil {
		s.metrics.RecordLoadOp(loadCfg.Client(), false)
		return nil, false, err
	}
	s.metrics.RecordLoadOp(loadCfg.Client(), true)

	if ms.Store != 0 {
		storeCfg := s.cb.Build(ctx, ms.Store, s.eval)
		if _, werr := s.storeFacade.Set(ctx, storeCfg, v); werr != nil {
			s.metrics.RecordStoreOp(storeCfg.Client(), false)
			if s.log != nil {
				logger.Op(s.log, "engine", "writeThrough").Warn("write-through failed",
					logger.String("key", key), logger.Error(werr), logger.Outcome("degraded"))
			}
		} else {
			s.metrics.RecordStoreOp(storeCfg.Client(), true)
		}
	}

	s.cacheUpdate(keyIdx, v)
	outcome = "load_hit"
	return v, true, nil
}

// evalStateProjection evaluates a State-client _load's key template
// directly: its value IS the resolved placeholder, not a fetch (§4.J
// step 4, §4.K "Template→state callback").
func (s *State) evalStateProjection(ctx context.Context, loadMetaIdx uint16) (any, error) {
	keyPropIdx, ok := s.findProp(loadMetaIdx, record.PropKey)
	if !ok {
		return nil, fmt.Errorf("%w: State-client _load has no key prop", kiterrors.ErrLoadFailed)
	}
	keyPropKey, ok := s.arena.Keys.Get(keyPropIdx)
	if !ok {
		return nil, fmt.Errorf("%w: State-client _load key prop missing", kiterrors.ErrLoadFailed)
	}
	return s.eval.Eval(ctx, keyPropKey.Child())
}

func (s *State) findProp(metaIdx uint16, prop record.PropKind) (uint16, bool) {
	for _, c := range s.arena.ChildrenOf(metaIdx) {
		ck, ok := s.arena.Keys.Get(c)
		if ok && ck.Prop() == prop {
			return c, true
		}
	}
	return 0, false
}

// Set requires key's _store block and writes value through it, updating
// the state cache on success. ttlSeconds is only meaningful for KVS.
func (s *State) Set(ctx context.Context, key string, value any, ttlSeconds int64) (bool, error) {
	file, path := splitKey(key)
	keyIdx, ok, err := s.manifestStore.Find(file, path)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %q", kiterrors.ErrKeyNotFound, key)
	}
	ms, ok, err := s.manifestStore.GetMeta(file, path)
	if err != nil {
		return false, err
	}
	if !ok || ms.Store == 0 {
		return false, fmt.Errorf("%w: %q has no _store", kiterrors.ErrStoreFailed, key)
	}

	storeCfg := s.cb.Build(ctx, ms.Store, s.eval)
	if ttlSeconds > 0 {
		storeCfg["ttl"] = ttlSeconds
	}
	ok2, err := s.storeFacade.Set(ctx, storeCfg, value)
	if err != nil {
		s.metrics.RecordStoreOp(storeCfg.Client(), false)
		return false, err
	}
	s.metrics.RecordStoreOp(storeCfg.Client(), true)
	s.cacheUpdate(keyIdx, value)
	return ok2, nil
}

// Delete requires key's _store block and removes it, clearing the state
// cache entry on success.
func (s *State) Delete(ctx context.Context, key string) (bool, error) {
	file, path := splitKey(key)
	keyIdx, ok, err := s.manifestStore.Find(file, path)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %q", kiterrors.ErrKeyNotFound, key)
	}
	ms, ok, err := s.manifestStore.GetMeta(file, path)
	if err != nil {
		return false, err
	}
	if !ok || ms.Store == 0 {
		return false, fmt.Errorf("%w: %q has no _store", kiterrors.ErrStoreFailed, key)
	}

	storeCfg := s.cb.Build(ctx, ms.Store, s.eval)
	ok2, err := s.storeFacade.Delete(ctx, storeCfg)
	if err != nil {
		s.metrics.RecordStoreOp(storeCfg.Client(), false)
		return false, err
	}
	s.metrics.RecordStoreOp(storeCfg.Client(), true)
	if ok2 {
		s.cacheRemove(keyIdx)
	}
	return ok2, nil
}

// Exists checks the state cache then the store tier; it never triggers
// `_load`.
func (s *State) Exists(ctx context.Context, key string) (bool, error) {
	file, path := splitKey(key)
	keyIdx, ok, err := s.manifestStore.Find(file, path)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %q", kiterrors.ErrKeyNotFound, key)
	}
	if s.cacheExists(keyIdx) {
		return true, nil
	}
	ms, ok, err := s.manifestStore.GetMeta(file, path)
	if err != nil {
		return false, err
	}
	if !ok || ms.Store == 0 {
		return false, nil
	}
	storeCfg := s.cb.Build(ctx, ms.Store, s.eval)
	_, found, err := s.storeFacade.Get(ctx, storeCfg)
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *State) enterRecursion(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] {
		return fmt.Errorf("%w: cycle on %q", kiterrors.ErrRecursionLimitExceeded, key)
	}
	if len(s.inFlight) >= s.recursionLimit {
		return fmt.Errorf("%w: depth limit resolving %q", kiterrors.ErrRecursionLimitExceeded, key)
	}
	s.inFlight[key] = true
	return nil
}

func (s *State) exitRecursion(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}

func (s *State) cacheGet(keyIdx uint16) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.get(keyIdx)
}

func (s *State) cacheUpdate(keyIdx uint16, v any) {
	s.mu.Lock()
	s.cache.update(keyIdx, v)
	s.mu.Unlock()
}

func (s *State) cacheRemove(keyIdx uint16) {
	s.mu.Lock()
	s.cache.remove(keyIdx)
	s.mu.Unlock()
}

func (s *State) cacheExists(keyIdx uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.exists(keyIdx)
}

// splitKey divides a dotted key into its file and remaining path.
func splitKey(key string) (file, path string) {
	if i := strings.IndexByte(key, '.'); i != -1 {
		return key[:i], key[i+1:]
	}
	return key, ""
}

// stripMapToBareNames rewrites cfg's "map" entry from absolute dotted
// paths (a storage concern) to bare field names (what the load façade
// projects into its result object) — §4.J step 6.
func stripMapToBareNames(cfg rconfig.Config) rconfig.Config {
	out := make(rconfig.Config, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	if m, ok := cfg["map"].(map[string]string); ok {
		bare := make(map[string]string, len(m))
		for absPath, col := range m {
			segs := strings.Split(absPath, ".")
			bare[segs[len(segs)-1]] = col
		}
		out["map"] = bare
	}
	return out
}
