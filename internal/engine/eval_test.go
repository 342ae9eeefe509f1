package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/threatflux/statekit/internal/manifest"
	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/record"
)

// findTemplate parses src under filename and returns the template index
// hanging off the _load.key prop at the given dotted field path.
func findTemplate(t *testing.T, arena *pool.Arena, rootIdx uint16, fieldPath ...string) uint16 {
	t.Helper()
	idx := rootIdx
	for _, name := range fieldPath {
		idx = findChild(t, arena, idx, name)
	}
	loadIdx := findChildByRoot(t, arena, idx, record.RootLoad)
	keyPropIdx := findChildByProp(t, arena, loadIdx, record.PropKey)
	keyPropKey, _ := arena.Keys.Get(keyPropIdx)
	return keyPropKey.Child()
}

func childrenOf(t *testing.T, arena *pool.Arena, idx uint16) []uint16 {
	t.Helper()
	k, ok := arena.Keys.Get(idx)
	if !ok {
		t.Fatalf("no key at %d", idx)
	}
	if k.HasChildren() {
		c, _ := arena.Children.Get(k.Child())
		return c
	}
	if k.Child() != 0 {
		return []uint16{k.Child()}
	}
	return nil
}

func findChild(t *testing.T, arena *pool.Arena, parentIdx uint16, name string) uint16 {
	t.Helper()
	for _, c := range childrenOf(t, arena, parentIdx) {
		ck, _ := arena.Keys.Get(c)
		if ck.Root() == record.RootField && !ck.IsPath() {
			text, _ := arena.Dynamic.Get(ck.Dynamic())
			if text == name {
				return c
			}
		}
	}
	t.Fatalf("no field child named %q under %d", name, parentIdx)
	return 0
}

func findChildByRoot(t *testing.T, arena *pool.Arena, parentIdx uint16, root record.RootKind) uint16 {
	t.Helper()
	for _, c := range childrenOf(t, arena, parentIdx) {
		ck, _ := arena.Keys.Get(c)
		if ck.Root() == root {
			return c
		}
	}
	t.Fatalf("no child with root %v under %d", root, parentIdx)
	return 0
}

func findChildByProp(t *testing.T, arena *pool.Arena, parentIdx uint16, prop record.PropKind) uint16 {
	t.Helper()
	for _, c := range childrenOf(t, arena, parentIdx) {
		ck, _ := arena.Keys.Get(c)
		if ck.Prop() == prop {
			return c
		}
	}
	t.Fatalf("no prop child %v under %d", prop, parentIdx)
	return 0
}

func TestEvaluator_SingleLiteralTokenReturnsString(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
host:
  _load:
    client: Env
    key: localhost
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "host")

	eval := NewEvaluator(arena, func(context.Context, string) (any, bool, error) {
		t.Fatal("literal-only template should never call get")
		return nil, false, nil
	})
	v, err := eval.Eval(context.Background(), tmplIdx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if v != "localhost" {
		t.Errorf("got %v, want %q", v, "localhost")
	}
}

func TestEvaluator_SingleTokenPathPreservesNativeType(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
cache:
  user:
    id:
      _load:
        client: KVS
        key: "${tenant_id}"
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "cache", "user", "id")

	var gotKey string
	eval := NewEvaluator(arena, func(_ context.Context, key string) (any, bool, error) {
		gotKey = key
		return 42, true, nil
	})
	v, err := eval.Eval(context.Background(), tmplIdx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if v != 42 {
		t.Errorf("got %v (%T), want int 42", v, v)
	}
	if gotKey != "cfg.cache.user.tenant_id" {
		t.Errorf("resolved placeholder key = %q, want %q", gotKey, "cfg.cache.user.tenant_id")
	}
}

func TestEvaluator_MultiTokenConcatenatesAsString(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
cache:
  user:
    tenant_id:
      _load:
        client: KVS
        key: "tenant:${org_id}"
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "cache", "user", "tenant_id")

	eval := NewEvaluator(arena, func(_ context.Context, key string) (any, bool, error) {
		if key != "cfg.cache.user.org_id" {
			t.Errorf("unexpected placeholder key %q", key)
		}
		return 123, true, nil
	})
	v, err := eval.Eval(context.Background(), tmplIdx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if v != "tenant:123" {
		t.Errorf("got %v, want %q", v, "tenant:123")
	}
}

func TestEvaluator_UnresolvedPlaceholderIsAnError(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
cache:
  user:
    tenant_id:
      _load:
        client: KVS
        key: "tenant:${org_id}"
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "cache", "user", "tenant_id")

	eval := NewEvaluator(arena, func(context.Context, string) (any, bool, error) {
		return nil, false, nil
	})
	if _, err := eval.Eval(context.Background(), tmplIdx); err == nil {
		t.Fatal("expected an error when the placeholder does not resolve")
	}
}

func TestEvaluator_NullValueCannotBeConcatenated(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
cache:
  user:
    tenant_id:
      _load:
        client: KVS
        key: "tenant:${org_id}"
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "cache", "user", "tenant_id")

	eval := NewEvaluator(arena, func(context.Context, string) (any, bool, error) {
		return nil, true, nil
	})
	if _, err := eval.Eval(context.Background(), tmplIdx); err == nil {
		t.Fatal("expected an error rendering a null value into a template")
	}
}

func TestEvaluator_PropagatesGetError(t *testing.T) {
	arena := pool.NewArena()
	rootIdx, err := manifest.ParseFile(arena, "cfg", []byte(`
cache:
  user:
    id:
      _load:
        client: KVS
        key: "${tenant_id}"
`))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	tmplIdx := findTemplate(t, arena, rootIdx, "cache", "user", "id")

	boom := errors.New("boom")
	eval := NewEvaluator(arena, func(context.Context, string) (any, bool, error) {
		return nil, false, boom
	})
	_, err = eval.Eval(context.Background(), tmplIdx)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped %v", err, boom)
	}
}
