package capture

import (
	"context"

	"mercator-hq/ganymede/pkg/exchange"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const exchangeKey contextKey = "ganymede_exchange"

// exchangeState is the per-exchange context structure threaded alongside
// the request: correlation id plus the metadata accumulator. It is owned
// by the interceptor and never shared across exchanges.
type exchangeState struct {
	correlationID string
	metadata      *exchange.Metadata
}

func withExchange(ctx context.Context, st *exchangeState) context.Context {
	return context.WithValue(ctx, exchangeKey, st)
}

func exchangeFrom(ctx context.Context) *exchangeState {
	st, _ := ctx.Value(exchangeKey).(*exchangeState)
	return st
}

// AttachMetadata merges kv into the current exchange's metadata map.
// Later keys override same-named earlier keys. Safe to call any number
// of times before completion; calls on a context without an in-flight
// exchange (e.g. a filtered path) are no-ops, as are calls after the
// record has been emitted.
func AttachMetadata(ctx context.Context, kv map[string]any) {
	if st := exchangeFrom(ctx); st != nil {
		st.metadata.Attach(kv)
	}
}

// CorrelationID returns the current exchange's correlation id, or ""
// when no exchange is in flight.
func CorrelationID(ctx context.Context) string {
	if st := exchangeFrom(ctx); st != nil {
		return st.correlationID
	}
	return ""
}
