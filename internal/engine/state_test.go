package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/rconfig"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

type fakeStoreFacade struct {
	mu       sync.Mutex
	data     map[string]any
	getCalls int
	setCalls int
}

func newFakeStoreFacade() *fakeStoreFacade {
	return &fakeStoreFacade{data: make(map[string]any)}
}

func (f *fakeStoreFacade) Get(_ context.Context, cfg rconfig.Config) (any, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	v, ok := f.data[cfg.String("key")]
	return v, ok, nil
}

func (f *fakeStoreFacade) Set(_ context.Context, cfg rconfig.Config, value any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	f.data[cfg.String("key")] = value
	return true, nil
}

func (f *fakeStoreFacade) Delete(_ context.Context, cfg rconfig.Config) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[cfg.String("key")]
	delete(f.data, cfg.String("key"))
	return ok, nil
}

type fakeLoadFacade struct {
	mu    sync.Mutex
	value any
	err   error
	calls int
}

func (f *fakeLoadFacade) Get(_ context.Context, _ rconfig.Config) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.value, f.err
}

func TestState_LoadHitWritesThroughToStore(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "db", `
host:
  _load:
    client: Env
    key: DB_HOST
  _store:
    client: InMemory
    key: db_host_cached
`)
	store := newFakeStoreFacade()
	load := &fakeLoadFacade{value: "localhost"}
	s := New(dir, store, load, 10, nil, nil)

	v, err := s.Get(context.Background(), "db.host")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != "localhost" {
		t.Errorf("got %v, want %q", v, "localhost")
	}
	if store.setCalls != 1 {
		t.Errorf("expected exactly one write-through Set, got %d", store.setCalls)
	}
	if store.data["db_host_cached"] != "localhost" {
		t.Errorf("store did not receive the write-through value: %v", store.data)
	}
}

func TestState_CacheHitAvoidsRepeatedLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "db", `
host:
  _load:
    client: Env
    key: DB_HOST
`)
	load := &fakeLoadFacade{value: "localhost"}
	s := New(dir, newFakeStoreFacade(), load, 10, nil, nil)

	if _, err := s.Get(context.Background(), "db.host"); err != nil {
		t.Fatalf("first Get error: %v", err)
	}
	if _, err := s.Get(context.Background(), "db.host"); err != nil {
		t.Fatalf("second Get error: %v", err)
	}
	if load.calls != 1 {
		t.Errorf("expected the load façade to be called once (second Get should be a cache hit), got %d calls", load.calls)
	}
}

func TestState_StoreHitNeverCallsLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cache", `
field:
  _load:
    client: Env
    key: SHOULD_NOT_BE_USED
  _store:
    client: InMemory
    key: field_key
`)
	store := newFakeStoreFacade()
	store.data["field_key"] = "cached-value"
	load := &fakeLoadFacade{value: "fresh-value"}
	s := New(dir, store, load, 10, nil, nil)

	v, err := s.Get(context.Background(), "cache.field")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != "cached-value" {
		t.Errorf("got %v, want %q", v, "cached-value")
	}
	if load.calls != 0 {
		t.Errorf("expected the load façade never to be called on a store hit, got %d calls", load.calls)
	}
}

func TestState_StateClientProjectsPlaceholderWithoutStoreOrLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
session:
  user_id:
    _load:
      client: Env
      key: USER_ID
  org:
    _load:
      client: State
      key: "${cfg.session.user_id}"
`)
	store := newFakeStoreFacade()
	load := &fakeLoadFacade{value: "u-42"}
	s := New(dir, store, load, 10, nil, nil)

	v, err := s.Get(context.Background(), "cfg.session.org")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != "u-42" {
		t.Errorf("got %v, want %q", v, "u-42")
	}
	if store.setCalls != 0 {
		t.Errorf("State-client projection should never write through to store, got %d Set calls", store.setCalls)
	}
}

func TestState_UnknownKeyIsNotFound(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", "a: b\n")
	s := New(dir, newFakeStoreFacade(), &fakeLoadFacade{}, 10, nil, nil)

	_, err := s.Get(context.Background(), "cfg.does.not.exist")
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
	if kiterrors.GetErrorCode(err) != kiterrors.ErrKeyNotFound {
		t.Errorf("error code = %v, want ErrKeyNotFound", kiterrors.GetErrorCode(err))
	}
}

func TestState_NoLoadOrStoreIsANilMiss(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", "plain: value\n")
	s := New(dir, newFakeStoreFacade(), &fakeLoadFacade{}, 10, nil, nil)

	v, err := s.Get(context.Background(), "cfg.plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("got %v, want nil (a plain scalar field has no _load/_store)", v)
	}
}

func TestState_SetRequiresStoreBlock(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
field:
  _load:
    client: Env
    key: FOO
`)
	s := New(dir, newFakeStoreFacade(), &fakeLoadFacade{}, 10, nil, nil)

	_, err := s.Set(context.Background(), "cfg.field", "v", 0)
	if err == nil {
		t.Fatal("expected an error setting a key with no _store block")
	}
	if kiterrors.GetErrorCode(err) != kiterrors.ErrStoreFailed {
		t.Errorf("error code = %v, want ErrStoreFailed", kiterrors.GetErrorCode(err))
	}
}

func TestState_SetWritesThroughAndUpdatesCache(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
session:
  _store:
    client: InMemory
    key: session_key
`)
	store := newFakeStoreFacade()
	s := New(dir, store, &fakeLoadFacade{}, 10, nil, nil)

	ok, err := s.Set(context.Background(), "cfg.session", "abc", 0)
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !ok {
		t.Fatal("expected Set to report ok=true")
	}
	if store.data["session_key"] != "abc" {
		t.Errorf("store did not receive the set value: %v", store.data)
	}

	// A second instance sharing the store starts with an empty state cache
	// and reads the value through the store tier, not the load façade.
	load := &fakeLoadFacade{value: "should-not-be-used"}
	s2 := New(dir, store, load, 10, nil, nil)
	v2, err := s2.Get(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Get after external Set error: %v", err)
	}
	if v2 != "abc" {
		t.Errorf("Get after external Set = %v, want %q (from the store)", v2, "abc")
	}

	// Cached by the Set call: s still serves the value once the store entry is gone.
	delete(store.data, "session_key")
	v, err := s.Get(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Get after Set error: %v", err)
	}
	if v != "abc" {
		t.Errorf("Get after Set = %v, want %q (from the state cache)", v, "abc")
	}
}

func TestState_DeleteClearsCacheAndStore(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
session:
  _store:
    client: InMemory
    key: session_key
`)
	store := newFakeStoreFacade()
	s := New(dir, store, &fakeLoadFacade{}, 10, nil, nil)

	if _, err := s.Set(context.Background(), "cfg.session", "abc", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	ok, err := s.Delete(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !ok {
		t.Fatal("expected Delete to report ok=true")
	}
	if _, present := store.data["session_key"]; present {
		t.Error("expected the store entry to be removed")
	}
	exists, err := s.Exists(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if exists {
		t.Error("expected the state cache entry to be cleared")
	}
}

func TestState_ExistsNeverTriggersLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
session:
  _load:
    client: Env
    key: SHOULD_NOT_BE_CALLED
  _store:
    client: InMemory
    key: session_key
`)
	store := newFakeStoreFacade()
	load := &fakeLoadFacade{value: "x"}
	s := New(dir, store, load, 10, nil, nil)

	exists, err := s.Exists(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false before any value is stored")
	}
	if load.calls != 0 {
		t.Errorf("Exists must never call the load façade, got %d calls", load.calls)
	}

	store.data["session_key"] = "present"
	exists, err = s.Exists(context.Background(), "cfg.session")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true once the store has a value")
	}
}

func TestState_CycleBetweenStateProjectionsIsDetected(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
a:
  _load:
    client: State
    key: "${cfg.b}"
b:
  _load:
    client: State
    key: "${cfg.a}"
`)
	s := New(dir, newFakeStoreFacade(), &fakeLoadFacade{}, 10, nil, nil)

	_, err := s.Get(context.Background(), "cfg.a")
	if err == nil {
		t.Fatal("expected a cycle to be detected")
	}
	if kiterrors.GetErrorCode(err) != kiterrors.ErrRecursionLimitExceeded {
		t.Errorf("error code = %v, want ErrRecursionLimitExceeded", kiterrors.GetErrorCode(err))
	}
}

func TestState_DepthLimitBoundsNonCyclicFanOut(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "cfg", `
a:
  _load:
    client: State
    key: "${cfg.b}"
b:
  _load:
    client: State
    key: "${cfg.c}"
c:
  _load:
    client: Env
    key: LEAF
`)
	load := &fakeLoadFacade{value: "leaf-value"}
	s := New(dir, newFakeStoreFacade(), load, 2, nil, nil)

	_, err := s.Get(context.Background(), "cfg.a")
	if err == nil {
		t.Fatal("expected the depth limit to bound a 3-deep fan-out with recursionLimit=2")
	}
	if kiterrors.GetErrorCode(err) != kiterrors.ErrRecursionLimitExceeded {
		t.Errorf("error code = %v, want ErrRecursionLimitExceeded", kiterrors.GetErrorCode(err))
	}
}
