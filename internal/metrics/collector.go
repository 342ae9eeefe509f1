package metrics

import (
	"time"
)

// Collector records resolution-engine metrics: how long State.Get calls
// take and how they resolved, cache effectiveness, and adapter failures.
// A Collector is handed into engine.New; callers that don't care about
// metrics pass NoopCollector{}.
type Collector interface {
	// RecordResolution records the latency of a single State.Get call and
	// how it was satisfied: cache_hit, store_hit, load_hit, miss, or error.
	RecordResolution(outcome string, duration time.Duration)

	// RecordCacheAccess records a state-value-cache lookup as a hit or miss.
	RecordCacheAccess(hit bool)

	// RecordRecursionLimitExceeded increments the counter of resolutions
	// aborted because the template evaluator hit the recursion depth limit.
	RecordRecursionLimitExceeded()

	// RecordStoreOp records a store adapter call (InMemory or KVS) by
	// client kind and whether it succeeded. Write-through failures are
	// recorded here with success=false rather than surfaced as errors.
	RecordStoreOp(clientKind string, success bool)

	// RecordLoadOp records a load adapter call (Env, InMemory, KVS, Db) by
	// client kind and whether it succeeded.
	RecordLoadOp(clientKind string, success bool)
}

// NoopCollector discards every recorded metric. It is the default
// Collector when metrics are disabled or a caller has no registry to
// report to.
type NoopCollector struct{}

func (NoopCollector) RecordResolution(outcome string, duration time.Duration) {}
func (NoopCollector) RecordCacheAccess(hit bool)                              {}
func (NoopCollector) RecordRecursionLimitExceeded()                           {}
func (NoopCollector) RecordStoreOp(clientKind string, success bool)           {}
func (NoopCollector) RecordLoadOp(clientKind string, success bool)            {}
