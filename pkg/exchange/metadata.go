package exchange

import "sync"

// Metadata is the mutable per-exchange metadata accumulator. It is created
// empty at exchange start, merged into additively by Attach, read once at
// record-finalization time, and discarded with the exchange. It is owned
// exclusively by one exchange; the mutex only guards against a handler
// attaching from a spawned goroutine.
type Metadata struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMetadata creates an empty accumulator.
func NewMetadata() *Metadata {
	return &Metadata{}
}

// Attach merges kv into the accumulator. Later keys override same-named
// earlier keys; disjoint keys coexist. Safe to call zero or more times
// before completion. Attaching after the record has been finalized has no
// effect on the already-emitted record (Snapshot copies).
func (m *Metadata) Attach(kv map[string]any) {
	if m == nil || len(kv) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any, len(kv))
	}
	for k, v := range kv {
		m.values[k] = v
	}
}

// Snapshot returns a copy of the accumulated metadata, or nil when nothing
// was attached, so the record's metadata field can be omitted entirely.
func (m *Metadata) Snapshot() map[string]any {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.values) == 0 {
		return nil
	}
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
