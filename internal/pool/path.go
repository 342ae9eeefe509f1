package pool

// Path holds ordered sequences of Dynamic-pool indices — qualified
// dotted paths, one dynamic index per segment. Unlike Dynamic, Path does
// not deduplicate: two identical segment sequences interned separately
// get distinct indices, since callers (map-entry qualification) may need
// to distinguish them by provenance even when the content matches.
type Path struct {
	entries [][]uint16 // entries[0] is the unused null slot
}

// NewPath returns a Path pool with index 0 reserved.
func NewPath() *Path {
	return &Path{entries: [][]uint16{nil}}
}

// Append interns segments as a new entry and returns its index.
func (p *Path) Append(segments []uint16) uint16 {
	idx := uint16(len(p.entries))
	cp := make([]uint16, len(segments))
	copy(cp, segments)
	p.entries = append(p.entries, cp)
	return idx
}

// Get returns the segment sequence at idx.
func (p *Path) Get(idx uint16) ([]uint16, bool) {
	if idx == 0 || int(idx) >= len(p.entries) {
		return nil, false
	}
	return p.entries[idx], true
}

// Len reports how many non-null entries the pool holds.
func (p *Path) Len() int { return len(p.entries) - 1 }
