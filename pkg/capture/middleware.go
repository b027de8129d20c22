package capture

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/ganymede/pkg/exchange"
	"mercator-hq/ganymede/pkg/pathfilter"
	"mercator-hq/ganymede/pkg/sse"
	"mercator-hq/ganymede/pkg/store"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

const (
	// DefaultMaxBodyBytes caps how much of a request or buffered
	// response body is retained for a record.
	DefaultMaxBodyBytes = 64 * 1024

	// CorrelationIDHeader echoes the exchange's correlation id to the
	// client.
	CorrelationIDHeader = "X-Correlation-ID"
)

// Options configures the HTTP exchange middleware.
type Options struct {
	// Store receives the finalized records. Required.
	Store *store.Store

	// Filter gates which paths are logged. Nil logs everything.
	Filter *pathfilter.Filter

	// IncludeHeaders copies request headers verbatim into records.
	IncludeHeaders bool

	// Settings supersedes IncludeHeaders with a live value a config
	// reload can flip at runtime. When nil, one is created from
	// IncludeHeaders.
	Settings *Settings

	// MaxBodyBytes caps captured body sizes. Default: 64 KiB.
	MaxBodyBytes int

	// Sentinel selects the shape of the "[DONE]" chunk.
	Sentinel sse.SentinelShape

	// Metrics is the operational side channel. Optional.
	Metrics *metrics.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Middleware returns the exchange-logging middleware. Eligible exchanges
// get a correlation id, a metadata accumulator on the request context,
// and a decorated response writer; when the handler returns, normally or
// because the client went away, exactly one record is finalized and
// handed to the store.
func Middleware(opts Options) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "capture")
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Settings == nil {
		opts.Settings = NewSettings(opts.IncludeHeaders)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Filter != nil && !opts.Filter.ShouldLog(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			st := &exchangeState{
				correlationID: exchange.NewCorrelationID(),
				metadata:      exchange.NewMetadata(),
			}
			ctx := withExchange(r.Context(), st)

			reqInfo := captureRequest(r, opts)

			w.Header().Set(CorrelationIDHeader, st.correlationID)
			cw := NewWriter(w, r.Header.Get("Accept"), opts.Sentinel, opts.MaxBodyBytes)

			// Finalize runs when the handler returns; an aborted
			// connection also surfaces as the handler returning, so
			// partial stream state still gets recorded.
			defer cw.finalized.Do(func() {
				rec := &exchange.LogRecord{
					Timestamp:     time.Now().UTC(),
					CorrelationID: st.correlationID,
					Kind:          exchange.KindHTTP,
					Method:        r.Method,
					Path:          r.URL.RequestURI(),
					StatusCode:    cw.StatusCode(),
					DurationMS:    time.Since(start).Milliseconds(),
					Request:       reqInfo,
					Response:      cw.responseInfo(),
					Metadata:      st.metadata.Snapshot(),
				}
				opts.Store.Append(rec)
				opts.Metrics.RecordEmitted(string(exchange.KindHTTP))
				opts.Metrics.ChunksParsed(cw.ChunkCount())

				logger.Debug("exchange recorded",
					"correlation_id", st.correlationID,
					"method", rec.Method,
					"path", rec.Path,
					"status", rec.StatusCode,
					"streaming", rec.Response.Streaming,
					"duration_ms", rec.DurationMS,
				)
			})

			next.ServeHTTP(cw, r.WithContext(ctx))
		})
	}
}

// captureRequest snapshots the inbound side of the exchange. The request
// body is read up to the configured cap; the captured prefix is spliced
// back in front of the unread remainder, so the handler sees the full
// body and only the prefix is ever buffered.
func captureRequest(r *http.Request, opts Options) *exchange.RequestInfo {
	info := &exchange.RequestInfo{}

	if q := r.URL.Query(); len(q) > 0 {
		info.Query = make(map[string]string, len(q))
		for k := range q {
			info.Query[k] = q.Get(k)
		}
	}

	if opts.Settings.IncludeHeaders() && len(r.Header) > 0 {
		info.Headers = make(map[string]string, len(r.Header))
		for k := range r.Header {
			info.Headers[k] = r.Header.Get(k)
		}
	}

	if r.Body != nil && r.Body != http.NoBody {
		data, err := io.ReadAll(io.LimitReader(r.Body, int64(opts.MaxBodyBytes)))
		if len(data) > 0 {
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
			if err == nil {
				info.Body = parseBody(data)
			}
		}
	}

	if info.Query == nil && info.Headers == nil && info.Body == nil {
		return nil
	}
	return info
}
