// Package capture implements the HTTP response interceptor: a decorator
// over http.ResponseWriter that transparently observes an arbitrary
// handler's writes, classifies the response as a one-shot payload or an
// open event stream, aggregates parsed SSE chunks and delta text, and
// emits exactly one log record per exchange on completion.
//
// Interception is purely observational: every write and header operation
// is forwarded to the underlying transport unmodified, so the bytes the
// real client receives are never altered, suppressed, or duplicated.
//
// Per-exchange state machine:
//
//	PENDING -> STREAMING (classifier latched true)
//	        -> BUFFERED  (non-streaming body captured)
//	any     -> FINALIZED (record emitted exactly once)
package capture
