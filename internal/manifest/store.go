package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/record"
)

// MetaSet is the collected `_load`/`_store`/`_state` meta-child indices
// for a resolved node, after walking root to leaf with child overriding
// parent per §4.D. A zero field means that meta block is absent.
type MetaSet struct {
	Load  uint16
	Store uint16
	State uint16
}

// Store lazy-loads manifest files by name and indexes their trie for
// find/get_meta lookups. A second Load of an already-loaded file is a
// no-op, satisfying §3 invariant 3.
type Store struct {
	dir    string
	arena  *pool.Arena
	loaded map[string]uint16
}

// NewStore returns a Store that opens manifest files under dir and
// compiles them into arena.
func NewStore(dir string, arena *pool.Arena) *Store {
	return &Store{
		dir:    dir,
		arena:  arena,
		loaded: make(map[string]uint16),
	}
}

// Load opens and parses file (without extension) if not already loaded,
// returning its file-root key index.
func (s *Store) Load(file string) (uint16, error) {
	if idx, ok := s.loaded[file]; ok {
		return idx, nil
	}

	path, err := s.resolvePath(file)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, kiterrors.WrapWithCode(err, kiterrors.ErrManifestLoadFailed, "reading manifest %q", file)
	}

	rootIdx, err := ParseFile(s.arena, file, data)
	if err != nil {
		return 0, kiterrors.WrapWithCode(err, kiterrors.ErrManifestLoadFailed, "loading manifest %q", file)
	}

	s.loaded[file] = rootIdx
	return rootIdx, nil
}

// resolvePath locates <dir>/<file>.yml or .yaml, failing on ambiguity
// (both present) or absence (neither present).
func (s *Store) resolvePath(file string) (string, error) {
	ymlPath := filepath.Join(s.dir, file+".yml")
	yamlPath := filepath.Join(s.dir, file+".yaml")

	_, errYml := os.Stat(ymlPath)
	_, errYaml := os.Stat(yamlPath)
	existsYml := errYml == nil
	existsYaml := errYaml == nil

	switch {
	case existsYml && existsYaml:
		return "", kiterrors.WrapWithCode(
			fmt.Errorf("both %s and %s exist", ymlPath, yamlPath),
			kiterrors.ErrAmbiguousManifestFile, "resolving manifest %q", file)
	case existsYml:
		return ymlPath, nil
	case existsYaml:
		return yamlPath, nil
	default:
		return "", kiterrors.WrapWithCode(
			fmt.Errorf("no .yml or .yaml file for %q in %s", file, s.dir),
			kiterrors.ErrManifestFileNotFound, "resolving manifest %q", file)
	}
}

// Find walks from file's root down the trie, segment by segment,
// matching on field-key children only (meta nodes are skipped). An
// empty path returns the file-root itself.
func (s *Store) Find(file, path string) (uint16, bool, error) {
	rootIdx, err := s.Load(file)
	if err != nil {
		return 0, false, err
	}

	cur := rootIdx
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			next, ok := s.findFieldChild(cur, seg)
			if !ok {
				return 0, false, nil
			}
			cur = next
		}
	}
	return cur, true, nil
}

// GetMeta walks root to the target node named by path, collecting
// `_load`/`_store`/`_state` meta children at every visited node — a
// child's meta block overrides a same-named block from an ancestor.
func (s *Store) GetMeta(file, path string) (*MetaSet, bool, error) {
	rootIdx, err := s.Load(file)
	if err != nil {
		return nil, false, err
	}

	var ms MetaSet
	cur := rootIdx
	s.collectMeta(cur, &ms)

	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			next, ok := s.findFieldChild(cur, seg)
			if !ok {
				return nil, false, nil
			}
			cur = next
			s.collectMeta(cur, &ms)
		}
	}
	return &ms, true, nil
}

func (s *Store) collectMeta(nodeIdx uint16, ms *MetaSet) {
	for _, c := range s.arena.ChildrenOf(nodeIdx) {
		ck, ok := s.arena.Keys.Get(c)
		if !ok {
			continue
		}
		switch ck.Root() {
		case record.RootLoad:
			ms.Load = c
		case record.RootStore:
			ms.Store = c
		case record.RootState:
			ms.State = c
		}
	}
}

// findFieldChild looks for a field-key child of parentIdx named name,
// skipping meta children.
func (s *Store) findFieldChild(parentIdx uint16, name string) (uint16, bool) {
	for _, c := range s.arena.ChildrenOf(parentIdx) {
		ck, ok := s.arena.Keys.Get(c)
		if !ok || ck.Root() != record.RootField || ck.IsPath() {
			continue
		}
		text, ok := s.arena.Dynamic.Get(ck.Dynamic())
		if ok && text == name {
			return c, true
		}
	}
	return 0, false
}

// Arena exposes the underlying pool.Arena for components (the template
// evaluator, config builder) that need direct pool access alongside
// trie navigation.
func (s *Store) Arena() *pool.Arena { return s.arena }
