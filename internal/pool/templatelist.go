package pool

import "github.com/threatflux/statekit/internal/record"

// TemplateList is the append-only array of 128-bit template value
// records a leaf field key or prop's template points to via its Key
// record's Child field.
type TemplateList struct {
	records []record.Template // records[0] is the unused null slot
}

// NewTemplateList returns a TemplateList with index 0 reserved.
func NewTemplateList() *TemplateList {
	return &TemplateList{records: []record.Template{{}}}
}

// Append writes t as a new record and returns its index.
func (l *TemplateList) Append(t record.Template) uint16 {
	idx := uint16(len(l.records))
	l.records = append(l.records, t)
	return idx
}

// Get returns the record at idx.
func (l *TemplateList) Get(idx uint16) (record.Template, bool) {
	if idx == 0 || int(idx) >= len(l.records) {
		return record.Template{}, false
	}
	return l.records[idx], true
}

// Len reports how many non-null records the list holds.
func (l *TemplateList) Len() int { return len(l.records) - 1 }
