package rpcintercept

import (
	"context"

	"mercator-hq/ganymede/pkg/exchange"
)

// CallType is the kind of RPC procedure being invoked.
type CallType string

const (
	Query        CallType = "query"
	Mutation     CallType = "mutation"
	Subscription CallType = "subscription"
)

// Call describes one procedure invocation: its type, symbolic path, input
// payload, and the mutable context shared across the call's lifecycle.
type Call struct {
	Type  CallType
	Path  string
	Input any
	Ctx   *CallContext
}

// CallContext is the mutable shared context of one call. The interceptor
// ensures Metadata exists before invoking downstream, so procedure code
// can attach freely.
type CallContext struct {
	Metadata *exchange.Metadata
}

// AttachMetadata merges kv into the call's metadata map, creating the
// accumulator if the call runs outside the interceptor.
func AttachMetadata(cc *CallContext, kv map[string]any) {
	if cc == nil {
		return
	}
	if cc.Metadata == nil {
		cc.Metadata = exchange.NewMetadata()
	}
	cc.Metadata.Attach(kv)
}

// Result is the settled outcome of a procedure call. A call can also
// fail by returning an error from Next instead.
type Result struct {
	OK    bool
	Data  any
	Error string
}

// Next is the downstream continuation the interceptor wraps.
type Next func(ctx context.Context, call *Call) (*Result, error)
