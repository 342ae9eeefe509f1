package record

import "github.com/threatflux/statekit/internal/bitfield"

// Key is the 64-bit trie node record. Field layout (MSB to LSB):
//
//	is_path(1) has_children(1) root(2) client(4) prop(4) type(5) dynamic(16) child(16) reserved(15)
//
// Index 0 of the key list is reserved as null; every other index is a
// live record written once at parse time and read thereafter.
type Key uint64

const (
	offIsPath       uint = 63
	offHasChildren  uint = 62
	offRoot         uint = 60
	offClient       uint = 56
	offProp         uint = 52
	offType         uint = 47
	offDynamic      uint = 31
	offChild        uint = 15
	offReserved     uint = 0

	maskIsPath      uint64 = 0x1
	maskHasChildren uint64 = 0x1
	maskRoot        uint64 = 0x3
	maskClient      uint64 = 0xF
	maskProp        uint64 = 0xF
	maskType        uint64 = 0x1F
	maskDynamic     uint64 = 0xFFFF
	maskChild       uint64 = 0xFFFF
	maskReserved    uint64 = 0x7FFF
)

// IsPath reports whether this is a map-child record whose dynamic field
// indexes the path map (a qualified dotted path) rather than the dynamic
// pool (a plain segment name).
func (k Key) IsPath() bool { return bitfield.Get(uint64(k), offIsPath, maskIsPath) != 0 }

// HasChildren reports whether Child indexes the children map (multiple
// children) rather than the key list directly (single child).
func (k Key) HasChildren() bool { return bitfield.Get(uint64(k), offHasChildren, maskHasChildren) != 0 }

// Root reports which of the four node kinds this record is.
func (k Key) Root() RootKind { return RootKind(bitfield.Get(uint64(k), offRoot, maskRoot)) }

// Client reports a meta node's `client:` value, if one was given.
func (k Key) Client() ClientKind { return ClientKind(bitfield.Get(uint64(k), offClient, maskClient)) }

// Prop reports which meta-block prop this node represents.
func (k Key) Prop() PropKind { return PropKind(bitfield.Get(uint64(k), offProp, maskProp)) }

// Type reports the `_state.type:` value, if this is a type prop node.
func (k Key) Type() TypeKind { return TypeKind(bitfield.Get(uint64(k), offType, maskType)) }

// Dynamic indexes the path map (if IsPath) or the dynamic pool otherwise.
func (k Key) Dynamic() uint16 { return uint16(bitfield.Get(uint64(k), offDynamic, maskDynamic)) }

// Child indexes the children map (if HasChildren) or the key list /
// template value list directly otherwise.
func (k Key) Child() uint16 { return uint16(bitfield.Get(uint64(k), offChild, maskChild)) }

// KeyBuilder assembles a Key record field by field. Zero value is a
// record with every field at its zero value (root=RootField, no
// children, dynamic/child unset).
type KeyBuilder struct {
	word uint64
}

func NewKeyBuilder() *KeyBuilder { return &KeyBuilder{} }

func (b *KeyBuilder) SetIsPath(v bool) *KeyBuilder {
	b.word = bitfield.Set(b.word, offIsPath, maskIsPath, boolBit(v))
	return b
}

func (b *KeyBuilder) SetHasChildren(v bool) *KeyBuilder {
	b.word = bitfield.Set(b.word, offHasChildren, maskHasChildren, boolBit(v))
	return b
}

func (b *KeyBuilder) SetRoot(r RootKind) *KeyBuilder {
	b.word = bitfield.Set(b.word, offRoot, maskRoot, uint64(r))
	return b
}

func (b *KeyBuilder) SetClient(c ClientKind) *KeyBuilder {
	b.word = bitfield.Set(b.word, offClient, maskClient, uint64(c))
	return b
}

func (b *KeyBuilder) SetProp(p PropKind) *KeyBuilder {
	b.word = bitfield.Set(b.word, offProp, maskProp, uint64(p))
	return b
}

func (b *KeyBuilder) SetType(t TypeKind) *KeyBuilder {
	b.word = bitfield.Set(b.word, offType, maskType, uint64(t))
	return b
}

func (b *KeyBuilder) SetDynamic(idx uint16) *KeyBuilder {
	b.word = bitfield.Set(b.word, offDynamic, maskDynamic, uint64(idx))
	return b
}

func (b *KeyBuilder) SetChild(idx uint16) *KeyBuilder {
	b.word = bitfield.Set(b.word, offChild, maskChild, uint64(idx))
	return b
}

func (b *KeyBuilder) Build() Key { return Key(b.word) }

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
