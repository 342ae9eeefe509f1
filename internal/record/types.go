// Package record defines the fixed-width trie record types the manifest
// parser emits and the resolution engine reads: the 64-bit key record and
// the 128-bit template value record, plus the closed enumerations their
// bit-fields encode.
package record

// RootKind distinguishes a normal field-key node from the three reserved
// meta blocks a field key may carry.
type RootKind uint8

const (
	RootField RootKind = 0
	RootLoad  RootKind = 1
	RootStore RootKind = 2
	RootState RootKind = 3
)

func (r RootKind) String() string {
	switch r {
	case RootField:
		return "field"
	case RootLoad:
		return "_load"
	case RootStore:
		return "_store"
	case RootState:
		return "_state"
	default:
		return "unknown"
	}
}

// ClientKind selects the backend a `client:` prop names. ClientNone marks
// a meta block with no client set.
type ClientKind uint8

const (
	ClientNone     ClientKind = 0
	ClientState    ClientKind = 1
	ClientInMemory ClientKind = 2
	ClientEnv      ClientKind = 3
	ClientKVS      ClientKind = 4
	ClientDb       ClientKind = 5
	ClientAPI      ClientKind = 6
	ClientFile     ClientKind = 7
)

// ParseClientKind maps a manifest `client:` string to its enum, reporting
// ok=false for anything outside the closed set.
func ParseClientKind(s string) (ClientKind, bool) {
	switch s {
	case "State":
		return ClientState, true
	case "InMemory":
		return ClientInMemory, true
	case "Env":
		return ClientEnv, true
	case "KVS":
		return ClientKVS, true
	case "Db":
		return ClientDb, true
	case "API":
		return ClientAPI, true
	case "File":
		return ClientFile, true
	default:
		return ClientNone, false
	}
}

func (c ClientKind) String() string {
	switch c {
	case ClientState:
		return "State"
	case ClientInMemory:
		return "InMemory"
	case ClientEnv:
		return "Env"
	case ClientKVS:
		return "KVS"
	case ClientDb:
		return "Db"
	case ClientAPI:
		return "API"
	case ClientFile:
		return "File"
	default:
		return "none"
	}
}

// PropKind identifies a meta-block child's role. PropNone marks a
// non-prop child (used for map entries, which are addressed by path).
type PropKind uint8

const (
	PropNone       PropKind = 0
	PropKey        PropKind = 1
	PropType       PropKind = 2
	PropConnection PropKind = 3
	PropMap        PropKind = 4
	PropTTL        PropKind = 5
	PropTable      PropKind = 6
	PropWhere      PropKind = 7
)

// ParsePropKind maps a meta-block child key to its enum, reporting
// ok=false for anything outside the closed set — unknown props are
// tolerated by the parser (§8 "unknown prop names are silently ignored"),
// so callers, not this function, decide what to do with ok=false.
func ParsePropKind(s string) (PropKind, bool) {
	switch s {
	case "client":
		return PropNone, false // client is stored in the client field, not a prop child
	case "key":
		return PropKey, true
	case "type":
		return PropType, true
	case "connection":
		return PropConnection, true
	case "map":
		return PropMap, true
	case "ttl":
		return PropTTL, true
	case "table":
		return PropTable, true
	case "where":
		return PropWhere, true
	default:
		return PropNone, false
	}
}

func (p PropKind) String() string {
	switch p {
	case PropKey:
		return "key"
	case PropType:
		return "type"
	case PropConnection:
		return "connection"
	case PropMap:
		return "map"
	case PropTTL:
		return "ttl"
	case PropTable:
		return "table"
	case PropWhere:
		return "where"
	default:
		return "none"
	}
}

// TypeKind is the closed set of `_state.type` values.
type TypeKind uint8

const (
	TypeNone     TypeKind = 0
	TypeInteger  TypeKind = 1
	TypeString   TypeKind = 2
	TypeFloat    TypeKind = 3
	TypeBoolean  TypeKind = 4
	TypeDatetime TypeKind = 5
)

// ParseTypeKind maps a `_state.type:` string to its enum.
func ParseTypeKind(s string) (TypeKind, bool) {
	switch s {
	case "integer":
		return TypeInteger, true
	case "string":
		return TypeString, true
	case "float":
		return TypeFloat, true
	case "boolean":
		return TypeBoolean, true
	case "datetime":
		return TypeDatetime, true
	default:
		return TypeNone, false
	}
}

func (t TypeKind) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeDatetime:
		return "datetime"
	default:
		return "none"
	}
}
