package exchange

import "time"

// Kind identifies which call surface produced a record.
type Kind string

const (
	// KindHTTP marks records produced by the HTTP middleware.
	KindHTTP Kind = "http"
	// KindRPC marks records produced by the procedure interceptor.
	KindRPC Kind = "rpc"
)

// LogRecord is the unit of output: exactly one is emitted per completed
// exchange, regardless of how many underlying writes occurred or whether
// the exchange errored. It serializes to a single NDJSON line.
type LogRecord struct {
	// Timestamp is the instant of completion, UTC.
	Timestamp time.Time `json:"timestamp"`

	// CorrelationID is unique per exchange,
	// format "<base36 unix-millis>-<random suffix>".
	CorrelationID string `json:"correlationId"`

	Kind Kind `json:"kind"`

	// Method is the HTTP verb, or the uppercased RPC call type.
	Method string `json:"method"`

	// Path is the route (query string preserved) or the procedure name.
	Path string `json:"path"`

	StatusCode int   `json:"statusCode,omitempty"`
	DurationMS int64 `json:"durationMs"`

	Request  *RequestInfo  `json:"request,omitempty"`
	Response *ResponseInfo `json:"response,omitempty"`
	Error    *ErrorInfo    `json:"error,omitempty"`

	// Metadata holds caller-attached context, omitted entirely when empty.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RequestInfo captures the inbound side of an exchange.
type RequestInfo struct {
	Body    any               `json:"body,omitempty"`
	Query   map[string]string `json:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// ResponseInfo captures the outbound side of an exchange. For streaming
// responses Chunks holds the parsed events in emission order and Text the
// concatenated delta fragments; for buffered responses Body holds the
// one-shot payload.
type ResponseInfo struct {
	Body      any    `json:"body,omitempty"`
	Streaming bool   `json:"streaming"`
	Chunks    []any  `json:"chunks,omitempty"`
	Text      string `json:"text,omitempty"`
}

// ErrorInfo captures a downstream failure.
type ErrorInfo struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}
