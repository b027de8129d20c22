package capture

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"

	"mercator-hq/ganymede/pkg/exchange"
	"mercator-hq/ganymede/pkg/sse"
)

// Writer decorates http.ResponseWriter to observe response writes without
// altering them. Every operation is forwarded to the underlying transport
// first; observation runs after, on the same bytes, and can never fail
// into the handler's control flow.
type Writer struct {
	http.ResponseWriter

	statusCode int
	written    bool

	classifier *sse.Classifier
	parser     *sse.Parser

	// chunks is the ordered sequence of parsed SSE payloads.
	chunks []any

	// body buffers the one-shot payload on the non-streaming path.
	body      bytes.Buffer
	maxBody   int
	truncated bool

	// finalized latches record emission so repeated completion calls
	// are no-ops.
	finalized sync.Once
}

// NewWriter wraps w for one exchange. accept is the inbound Accept header
// value, which seeds the stream classifier; maxBody caps how much of a
// non-streaming body is retained for the record.
func NewWriter(w http.ResponseWriter, accept string, sentinel sse.SentinelShape, maxBody int) *Writer {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Writer{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		classifier:     sse.NewClassifier(accept),
		parser:         sse.NewParser(sentinel),
		maxBody:        maxBody,
	}
}

// SetHeader sets a single header on the underlying response and feeds the
// explicit header-set signal to the stream classifier. Handlers that
// mutate Header() directly are still covered: the full header block is
// observed when headers are flushed by WriteHeader.
func (w *Writer) SetHeader(key, value string) {
	w.ResponseWriter.Header().Set(key, value)
	w.classifier.ObserveHeader(key, value)
}

// WriteHeader forwards the status write and observes the header block as
// it stands at flush time, covering both explicit Set calls and bulk
// header population. Duplicate calls are not forwarded, matching
// net/http's one-shot header contract.
func (w *Writer) WriteHeader(code int) {
	if w.written {
		return
	}
	w.statusCode = code
	w.written = true
	w.classifier.ObserveHeaderMap(w.ResponseWriter.Header())
	w.ResponseWriter.WriteHeader(code)
}

// Write forwards the chunk unmodified, then drives the capture pipeline:
// decode, classify (including content sniffing), and, once classified
// streaming, parse SSE events. Non-streaming chunks accumulate in the
// body buffer up to the configured cap.
func (w *Writer) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.observe(b)
	return n, err
}

// Flush forwards to the underlying writer when it supports flushing.
// Flushing is not itself a streaming signal.
func (w *Writer) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// StatusCode returns the captured status code (200 if never written).
func (w *Writer) StatusCode() int {
	return w.statusCode
}

// Streaming reports whether the exchange has been classified as an event
// stream. Monotonic: once true it stays true.
func (w *Writer) Streaming() bool {
	return w.classifier.Streaming()
}

// ChunkCount returns the number of parsed SSE chunks so far.
func (w *Writer) ChunkCount() int {
	return len(w.chunks)
}

func (w *Writer) observe(b []byte) {
	text := sse.DecodeChunk(b)
	if text == "" {
		return
	}
	w.classifier.ObserveBody(text)
	if w.classifier.Streaming() {
		if parsed := w.parser.Parse(text); parsed != nil {
			w.chunks = append(w.chunks, parsed...)
		}
		return
	}
	if remaining := w.maxBody - w.body.Len(); remaining > 0 {
		if len(text) > remaining {
			text = text[:remaining]
			w.truncated = true
		}
		w.body.WriteString(text)
	} else {
		w.truncated = true
	}
}

// responseInfo builds the record's response section from whatever state
// the exchange reached: the streaming branch carries the ordered chunk
// list and optional delta text, the buffered branch carries the one-shot
// body (JSON-parsed when possible, raw text otherwise).
func (w *Writer) responseInfo() *exchange.ResponseInfo {
	if w.classifier.Streaming() {
		info := &exchange.ResponseInfo{
			Streaming: true,
			Chunks:    w.chunks,
		}
		if w.parser.HasText() {
			info.Text = w.parser.Text()
		}
		return info
	}

	info := &exchange.ResponseInfo{Streaming: false}
	if w.body.Len() > 0 {
		info.Body = parseBody(w.body.Bytes())
	}
	return info
}

// parseBody attempts to interpret a buffered body as structured JSON,
// defaulting to the raw text when it is not parseable.
func parseBody(b []byte) any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}
