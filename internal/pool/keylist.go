package pool

import "github.com/threatflux/statekit/internal/record"

// KeyList is the append-only array of 64-bit key records shared by every
// loaded manifest file — key indices are unique across the whole engine
// instance, not just within one file.
type KeyList struct {
	records []record.Key // records[0] is the unused null slot
}

// NewKeyList returns a KeyList with index 0 reserved.
func NewKeyList() *KeyList {
	return &KeyList{records: []record.Key{0}}
}

// Append writes k as a new record and returns its index.
func (l *KeyList) Append(k record.Key) uint16 {
	idx := uint16(len(l.records))
	l.records = append(l.records, k)
	return idx
}

// Get returns the record at idx.
func (l *KeyList) Get(idx uint16) (record.Key, bool) {
	if idx == 0 || int(idx) >= len(l.records) {
		return 0, false
	}
	return l.records[idx], true
}

// Set overwrites the record at idx, reporting false for the null index
// or an index past the end. The manifest parser does not call it: it
// appends each record only once its children are known.
func (l *KeyList) Set(idx uint16, k record.Key) bool {
	if idx == 0 || int(idx) >= len(l.records) {
		return false
	}
	l.records[idx] = k
	return true
}

// Len reports how many non-null records the list holds.
func (l *KeyList) Len() int { return len(l.records) - 1 }
