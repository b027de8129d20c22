package capture

import "sync/atomic"

// Settings holds the middleware options that can change while the
// middleware is serving: the middleware reads them on every request, and
// a configuration reload callback writes them. Reads and writes never
// block each other.
type Settings struct {
	includeHeaders atomic.Bool
}

// NewSettings creates a Settings seeded with the given header-capture
// state.
func NewSettings(includeHeaders bool) *Settings {
	s := &Settings{}
	s.includeHeaders.Store(includeHeaders)
	return s
}

// SetIncludeHeaders switches request-header capture on or off for
// subsequent exchanges. In-flight exchanges keep the value they started
// with.
func (s *Settings) SetIncludeHeaders(on bool) {
	s.includeHeaders.Store(on)
}

// IncludeHeaders reports the current header-capture state. Nil-safe.
func (s *Settings) IncludeHeaders() bool {
	if s == nil {
		return false
	}
	return s.includeHeaders.Load()
}
