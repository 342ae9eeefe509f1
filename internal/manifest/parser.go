// Package manifest compiles manifest YAML into the shared pool.Arena the
// resolution engine reads, and indexes loaded files for find/get_meta
// lookups.
package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/pool"
	"github.com/threatflux/statekit/internal/record"
)

// ParseFile compiles a single manifest file's YAML source into arena,
// returning the new file-root key index. filename is the logical root
// name (e.g. "connection" for connection.yml), not a filesystem path.
func ParseFile(arena *pool.Arena, filename string, source []byte) (uint16, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return 0, kiterrors.WrapWithCode(err, kiterrors.ErrManifestParseFailed, "parsing manifest %q", filename)
	}

	if len(doc.Content) == 0 {
		return appendNode(arena, record.RootField, arena.Dynamic.Intern(filename), nil), nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return 0, kiterrors.WrapWithCode(
			fmt.Errorf("root YAML node is not a mapping"),
			kiterrors.ErrManifestParseFailed, "parsing manifest %q", filename)
	}

	children, err := parseFieldChildren(mapping, []string{filename}, arena)
	if err != nil {
		return 0, kiterrors.WrapWithCode(err, kiterrors.ErrManifestParseFailed, "parsing manifest %q", filename)
	}

	return appendNode(arena, record.RootField, arena.Dynamic.Intern(filename), children), nil
}

// parseFieldChildren walks one mapping level, producing one child key
// index per entry: `_load`/`_store`/`_state` become meta-block children,
// everything else becomes a field-key child.
func parseFieldChildren(mapping *yaml.Node, fieldPath []string, arena *pool.Arena) ([]uint16, error) {
	children := make([]uint16, 0, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]
		name := keyNode.Value

		var (
			idx uint16
			err error
		)
		switch name {
		case "_load":
			idx, err = parseMetaBlock(valNode, record.RootLoad, fieldPath, arena)
		case "_store":
			idx, err = parseMetaBlock(valNode, record.RootStore, fieldPath, arena)
		case "_state":
			idx, err = parseMetaBlock(valNode, record.RootState, fieldPath, arena)
		default:
			idx, err = parseFieldKey(valNode, name, fieldPath, arena)
		}
		if err != nil {
			return nil, err
		}
		children = append(children, idx)
	}

	return children, nil
}

// parseFieldKey builds a field-key node for name. A scalar value becomes
// a template leaf; a mapping recurses into further meta/field children.
func parseFieldKey(valNode *yaml.Node, name string, fieldPath []string, arena *pool.Arena) (uint16, error) {
	newPath := append(append([]string{}, fieldPath...), name)
	nameIdx := arena.Dynamic.Intern(name)

	switch valNode.Kind {
	case yaml.ScalarNode:
		tmplIdx, err := buildTemplateFromScalar(valNode.Value, newPath, arena)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		key := record.NewKeyBuilder().
			SetRoot(record.RootField).
			SetDynamic(nameIdx).
			SetChild(tmplIdx).
			Build()
		return arena.Keys.Append(key), nil

	case yaml.MappingNode:
		children, err := parseFieldChildren(valNode, newPath, arena)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		return appendNode(arena, record.RootField, nameIdx, children), nil

	default:
		return 0, fmt.Errorf("field %q: unsupported YAML node kind %v", name, valNode.Kind)
	}
}

// parseMetaBlock builds a `_load`/`_store`/`_state` meta node. `client`
// is absorbed directly into the meta node's own Client field (it has no
// child record of its own); every other recognized prop becomes a child
// record; unrecognized prop names are silently ignored (§8).
func parseMetaBlock(valNode *yaml.Node, rootKind record.RootKind, fieldPath []string, arena *pool.Arena) (uint16, error) {
	if valNode.Kind != yaml.MappingNode {
		return 0, fmt.Errorf("meta block must be a mapping, got %v", valNode.Kind)
	}

	client := record.ClientNone
	var propChildren []uint16

	for i := 0; i+1 < len(valNode.Content); i += 2 {
		propName := valNode.Content[i].Value
		propVal := valNode.Content[i+1]

		switch propName {
		case "client":
			c, ok := record.ParseClientKind(propVal.Value)
			if !ok {
				return 0, fmt.Errorf("unknown client %q", propVal.Value)
			}
			client = c

		case "type":
			t, ok := record.ParseTypeKind(propVal.Value)
			if !ok {
				return 0, fmt.Errorf("unknown type %q", propVal.Value)
			}
			key := record.NewKeyBuilder().
				SetRoot(rootKind).
				SetProp(record.PropType).
				SetType(t).
				Build()
			propChildren = append(propChildren, arena.Keys.Append(key))

		case "map":
			idx, err := parseMapProp(propVal, rootKind, fieldPath, arena)
			if err != nil {
				return 0, err
			}
			propChildren = append(propChildren, idx)

		case "key", "connection", "table", "where", "ttl":
			propKind, _ := record.ParsePropKind(propName)
			tmplIdx, err := buildTemplateFromScalar(propVal.Value, fieldPath, arena)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", propName, err)
			}
			key := record.NewKeyBuilder().
				SetRoot(rootKind).
				SetProp(propKind).
				SetChild(tmplIdx).
				Build()
			propChildren = append(propChildren, arena.Keys.Append(key))

		default:
			// unknown prop names are tolerated, not structural errors
			continue
		}
	}

	builder := record.NewKeyBuilder().SetRoot(rootKind).SetClient(client)
	return arena.Keys.Append(buildWithChildren(builder, propChildren, arena)), nil
}

// parseMapProp builds the `map` prop's children: each entry's key is
// qualified to an absolute dotted path (filename + ancestors + entry
// name) and interned into the path pool; its value is a literal column
// name / env-var name, stored as an ordinary (typically single-token)
// template.
func parseMapProp(valNode *yaml.Node, rootKind record.RootKind, fieldPath []string, arena *pool.Arena) (uint16, error) {
	if valNode.Kind != yaml.MappingNode {
		return 0, fmt.Errorf("map prop must be a mapping, got %v", valNode.Kind)
	}

	entries := make([]uint16, 0, len(valNode.Content)/2)

	for i := 0; i+1 < len(valNode.Content); i += 2 {
		entryName := valNode.Content[i].Value
		colNode := valNode.Content[i+1]

		absSegments := append(append([]string{}, fieldPath...), entryName)
		pathIdx := internPath(arena, absSegments)

		tmplIdx, err := buildTemplateFromScalar(colNode.Value, fieldPath, arena)
		if err != nil {
			return 0, fmt.Errorf("map.%s: %w", entryName, err)
		}

		entry := record.NewKeyBuilder().
			SetRoot(record.RootField).
			SetIsPath(true).
			SetDynamic(pathIdx).
			SetChild(tmplIdx).
			Build()
		entries = append(entries, arena.Keys.Append(entry))
	}

	mapKey := record.NewKeyBuilder().SetRoot(rootKind).SetProp(record.PropMap)
	return arena.Keys.Append(buildWithChildren(mapKey, entries, arena)), nil
}

// buildTemplateFromScalar tokenizes and interns a scalar's template,
// qualifying any bare placeholder against fieldPath, and appends the
// resulting record.Template to the arena.
func buildTemplateFromScalar(text string, fieldPath []string, arena *pool.Arena) (uint16, error) {
	raw, err := tokenize(text)
	if err != nil {
		return 0, err
	}

	tokens := make([]record.Token, len(raw))
	for i, rt := range raw {
		if rt.isPath {
			qualified := qualifyPlaceholder(rt.text, fieldPath)
			tokens[i] = record.Token{IsPath: true, Dynamic: internPath(arena, strings.Split(qualified, "."))}
		} else {
			tokens[i] = record.Token{IsPath: false, Dynamic: arena.Dynamic.Intern(rt.text)}
		}
	}

	return arena.Templates.Append(record.NewTemplate(tokens)), nil
}

// internPath interns each dotted segment into the dynamic pool and
// appends the resulting index sequence to the path pool.
func internPath(arena *pool.Arena, segments []string) uint16 {
	idxs := make([]uint16, len(segments))
	for i, seg := range segments {
		idxs[i] = arena.Dynamic.Intern(seg)
	}
	return arena.Path.Append(idxs)
}

// appendNode builds and appends a field-key-shaped node (file-root or
// nested field key) with the given name index and children.
func appendNode(arena *pool.Arena, root record.RootKind, nameIdx uint16, children []uint16) uint16 {
	builder := record.NewKeyBuilder().SetRoot(root).SetDynamic(nameIdx)
	return arena.Keys.Append(buildWithChildren(builder, children, arena))
}

// buildWithChildren finishes a KeyBuilder by attaching 0, 1, or many
// children, choosing HasChildren/direct-Child addressing as §3 dictates.
func buildWithChildren(b *record.KeyBuilder, children []uint16, arena *pool.Arena) record.Key {
	switch len(children) {
	case 0:
		return b.Build()
	case 1:
		return b.SetChild(children[0]).Build()
	default:
		childrenIdx := arena.Children.Append(children)
		return b.SetHasChildren(true).SetChild(childrenIdx).Build()
	}
}
