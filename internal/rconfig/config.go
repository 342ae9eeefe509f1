// Package rconfig defines the small flat config map the resolution
// engine's config builder (§4.F) produces from a `_load`/`_store`/
// `_state` meta node, and that the store and load façades (§4.G, §4.H)
// consume. It is its own package, separate from internal/engine, so the
// façade packages can depend on the shape without importing the engine
// package that builds it.
package rconfig

// Config is a flat map of well-known prop names: at most eight entries
// ("client", "key", "type", "connection", "map", "ttl", "table",
// "where"), populated only for props present in the source meta block.
type Config map[string]any

// Client returns the "client" entry as a string, or "" if absent.
func (c Config) Client() string {
	s, _ := c["client"].(string)
	return s
}

// String returns entry name as a string, or "" if absent or not a string.
func (c Config) String(name string) string {
	s, _ := c[name].(string)
	return s
}

// Map returns entry name as a map[string]string, or nil if absent.
func (c Config) Map(name string) map[string]string {
	m, _ := c[name].(map[string]string)
	return m
}

// TTL returns the "ttl" entry in seconds, or 0 if absent.
func (c Config) TTL() int64 {
	v, _ := c["ttl"].(int64)
	return v
}
