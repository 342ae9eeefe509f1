package pool

// Children holds ordered sequences of key-list indices — used on a trie
// node that has more than one child, where the node's Key record's Child
// field indexes into this pool rather than the key list directly.
type Children struct {
	entries [][]uint16 // entries[0] is the unused null slot
}

// NewChildren returns a Children pool with index 0 reserved.
func NewChildren() *Children {
	return &Children{entries: [][]uint16{nil}}
}

// Append interns children as a new entry and returns its index.
func (c *Children) Append(children []uint16) uint16 {
	idx := uint16(len(c.entries))
	cp := make([]uint16, len(children))
	copy(cp, children)
	c.entries = append(c.entries, cp)
	return idx
}

// Get returns the child-index sequence at idx.
func (c *Children) Get(idx uint16) ([]uint16, bool) {
	if idx == 0 || int(idx) >= len(c.entries) {
		return nil, false
	}
	return c.entries[idx], true
}

// Len reports how many non-null entries the pool holds.
func (c *Children) Len() int { return len(c.entries) - 1 }
