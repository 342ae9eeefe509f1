package pool

import "github.com/threatflux/statekit/internal/record"

// Arena bundles the five pools a manifest parser populates and a trie
// walker reads: one set per engine instance, created with the engine and
// dropped with it (§3 "Lifecycles").
type Arena struct {
	Dynamic   *Dynamic
	Path      *Path
	Children  *Children
	Keys      *KeyList
	Templates *TemplateList
}

// NewArena returns a fresh Arena with every pool's index 0 reserved.
func NewArena() *Arena {
	return &Arena{
		Dynamic:   NewDynamic(),
		Path:      NewPath(),
		Children:  NewChildren(),
		Keys:      NewKeyList(),
		Templates: NewTemplateList(),
	}
}

// ChildrenOf returns idx's child indices, regardless of whether the
// record addresses them directly (single child) or via the children
// pool (§3 "has_children"). A leaf or unknown index yields nil.
func (a *Arena) ChildrenOf(idx uint16) []uint16 {
	k, ok := a.Keys.Get(idx)
	if !ok {
		return nil
	}
	if !k.HasChildren() {
		if k.Child() == 0 {
			return nil
		}
		return []uint16{k.Child()}
	}
	children, _ := a.Children.Get(k.Child())
	return children
}

// ChildrenByRoot filters ChildrenOf(idx) to those matching root.
func (a *Arena) ChildrenByRoot(idx uint16, root record.RootKind) []uint16 {
	var out []uint16
	for _, c := range a.ChildrenOf(idx) {
		ck, ok := a.Keys.Get(c)
		if ok && ck.Root() == root {
			out = append(out, c)
		}
	}
	return out
}
