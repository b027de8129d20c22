package rpcintercept

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"mercator-hq/ganymede/pkg/exchange"
	"mercator-hq/ganymede/pkg/store"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// Options configures the procedure interceptor.
type Options struct {
	// Store receives the finalized records. Required.
	Store *store.Store

	// Metrics is the operational side channel. Optional.
	Metrics *metrics.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Interceptor emits one record per wrapped procedure call.
type Interceptor struct {
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a procedure interceptor.
func New(opts Options) *Interceptor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Interceptor{
		store:   opts.Store,
		metrics: opts.Metrics,
		logger:  logger.With("component", "rpcintercept"),
	}
}

// Intercept wraps one downstream call. It records start time and a
// correlation id, ensures a metadata accumulator exists on the call's
// shared context, invokes the continuation, and on settlement emits
// exactly one record. The downstream result and error are returned
// unchanged; a downstream panic is logged with its stack and re-raised.
func (i *Interceptor) Intercept(ctx context.Context, call *Call, next Next) (res *Result, err error) {
	start := time.Now()
	correlationID := exchange.NewCorrelationID()

	if call.Ctx == nil {
		call.Ctx = &CallContext{}
	}
	if call.Ctx.Metadata == nil {
		call.Ctx.Metadata = exchange.NewMetadata()
	}

	finalized := false
	finalize := func(res *Result, callErr error, stack string) {
		if finalized {
			return
		}
		finalized = true
		i.emit(call, correlationID, start, res, callErr, stack)
	}

	defer func() {
		if r := recover(); r != nil {
			finalize(nil, fmt.Errorf("panic: %v", r), string(debug.Stack()))
			panic(r)
		}
	}()

	res, err = next(ctx, call)
	finalize(res, err, "")
	return res, err
}

func (i *Interceptor) emit(call *Call, correlationID string, start time.Time, res *Result, callErr error, stack string) {
	rec := &exchange.LogRecord{
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Kind:          exchange.KindRPC,
		Method:        strings.ToUpper(string(call.Type)),
		Path:          call.Path,
		StatusCode:    http.StatusOK,
		DurationMS:    time.Since(start).Milliseconds(),
		Metadata:      call.Ctx.Metadata.Snapshot(),
	}

	if call.Input != nil {
		rec.Request = &exchange.RequestInfo{Body: call.Input}
	}

	switch {
	case callErr != nil:
		rec.StatusCode = http.StatusInternalServerError
		rec.Error = &exchange.ErrorInfo{Message: callErr.Error(), Stack: stack}
	case res != nil && !res.OK:
		rec.StatusCode = http.StatusInternalServerError
		rec.Error = &exchange.ErrorInfo{Message: res.Error}
	case res != nil:
		rec.Response = &exchange.ResponseInfo{Body: res.Data}
	}

	i.store.Append(rec)
	i.metrics.RecordEmitted(string(exchange.KindRPC))

	i.logger.Debug("procedure recorded",
		"correlation_id", correlationID,
		"type", call.Type,
		"path", call.Path,
		"status", rec.StatusCode,
		"duration_ms", rec.DurationMS,
	)
}
