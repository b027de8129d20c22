package sse

import (
	"net/textproto"
	"strings"
)

// EventStreamMediaType is the content type of a server-sent-event stream.
const EventStreamMediaType = "text/event-stream"

// Classifier decides, at any point during an exchange, whether the
// response is an event stream. It is a one-way latch: once any signal
// flips it true it stays true for the exchange. Real-world pipelines set
// headers through several different call shapes and some omit headers
// entirely while emitting SSE-shaped bytes, so no single signal is
// trusted on its own.
type Classifier struct {
	streaming bool
}

// NewClassifier creates a classifier initialized from the inbound Accept
// header: a client that asked for an event stream is assumed to get one.
// The latch only tightens, so the response cannot undo that assumption.
func NewClassifier(accept string) *Classifier {
	return &Classifier{
		streaming: strings.Contains(strings.ToLower(accept), EventStreamMediaType),
	}
}

// Streaming reports the current classification.
func (c *Classifier) Streaming() bool {
	return c.streaming
}

// ObserveHeader feeds an explicit single header-set call. Only a
// Content-Type value containing the event-stream media type flips the
// latch.
func (c *Classifier) ObserveHeader(key, value string) {
	if c.streaming {
		return
	}
	if textproto.CanonicalMIMEHeaderKey(key) != "Content-Type" {
		return
	}
	if strings.Contains(strings.ToLower(value), EventStreamMediaType) {
		c.streaming = true
	}
}

// ObserveHeaderMap feeds the header block of a bulk status/headers write
// supplied in keyed-map form.
func (c *Classifier) ObserveHeaderMap(headers map[string][]string) {
	for k, vs := range headers {
		for _, v := range vs {
			c.ObserveHeader(k, v)
		}
	}
}

// ObserveHeaderList feeds the header block of a bulk status/headers write
// supplied as a flat alternating key/value sequence. A trailing key with
// no value is ignored.
func (c *Classifier) ObserveHeaderList(kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		c.ObserveHeader(kv[i], kv[i+1])
	}
}

// ObserveBody content-sniffs decoded chunk text: a line starting with
// "data:" or "event:" classifies the response as streaming even when no
// header was ever set.
func (c *Classifier) ObserveBody(text string) {
	if c.streaming || text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "data:") || strings.HasPrefix(line, "event:") {
			c.streaming = true
			return
		}
	}
}
