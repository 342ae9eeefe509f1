package engine

// stateCache is the per-instance last-value cache keyed by trie key
// index (§4.I). It is an append-only record table plus a parallel value
// table rather than a map, so cache entries stay coupled to trie key
// indices without per-key heap overhead; lookup is a linear scan, which
// is acceptable since the cache is not on any path that demands hashed
// lookup.
type stateCache struct {
	keyIndex []uint16 // keyIndex[i] is the trie key index for slot i, or 0 if freed
	values   []any
}

func newStateCache() *stateCache {
	return &stateCache{}
}

// get returns the cached value for keyIdx, if present.
func (c *stateCache) get(keyIdx uint16) (any, bool) {
	for i, k := range c.keyIndex {
		if k == keyIdx {
			return c.values[i], true
		}
	}
	return nil, false
}

// update overwrites (or inserts) keyIdx's cached value.
func (c *stateCache) update(keyIdx uint16, value any) {
	for i, k := range c.keyIndex {
		if k == keyIdx {
			c.values[i] = value
			return
		}
	}
	c.keyIndex = append(c.keyIndex, keyIdx)
	c.values = append(c.values, value)
}

// remove zeroes keyIdx's entry, if present. Reports whether it was found.
func (c *stateCache) remove(keyIdx uint16) bool {
	for i, k := range c.keyIndex {
		if k == keyIdx {
			c.keyIndex[i] = 0
			c.values[i] = nil
			return true
		}
	}
	return false
}

// exists reports whether keyIdx currently has a cached value.
func (c *stateCache) exists(keyIdx uint16) bool {
	_, ok := c.get(keyIdx)
	return ok
}
