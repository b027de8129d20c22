package sse

import (
	"encoding/json"
	"strings"
)

const (
	// dataPrefix carries SSE event payloads; other framing lines
	// ("event:", comments, blank separators) are not separately modeled.
	dataPrefix = "data: "

	// doneSentinel terminates an SSE stream.
	doneSentinel = "[DONE]"
)

// SentinelShape selects the synthetic chunk emitted for the "[DONE]"
// termination sentinel. Two shapes exist in the wild; which one a given
// deployment expects is configuration, not guesswork.
type SentinelShape string

const (
	// SentinelTyped emits {"type":"done"}. Default.
	SentinelTyped SentinelShape = "type"
	// SentinelFlag emits {"done":true}.
	SentinelFlag SentinelShape = "done"
)

// Parser extracts discrete event records from decoded stream writes and
// folds incremental text-delta events into a running accumulator. One
// Parser serves exactly one exchange.
type Parser struct {
	sentinel SentinelShape
	deltas   []string
}

// NewParser creates a parser. An empty shape defaults to SentinelTyped.
func NewParser(shape SentinelShape) *Parser {
	if shape == "" {
		shape = SentinelTyped
	}
	return &Parser{sentinel: shape}
}

// Parse extracts zero or more events from one decoded write. A single
// write can carry multiple logical events; the result is always an
// ordered slice. It returns nil, not an empty slice, when no data line
// was found, so callers can distinguish "nothing parsed" from "parsed an
// empty list".
//
// Each "data: " line yields one chunk: the termination sentinel yields
// the configured done marker, valid JSON yields the parsed value, and
// anything else yields {"raw": <original text>}. Events with
// type "text-delta" and a string delta additionally append their fragment
// to the text accumulator, order-preserving.
func (p *Parser) Parse(text string) []any {
	var chunks []any
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := strings.TrimPrefix(line, dataPrefix)

		if payload == doneSentinel {
			chunks = append(chunks, p.doneChunk())
			continue
		}

		var parsed any
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			chunks = append(chunks, map[string]any{"raw": payload})
			continue
		}
		if obj, ok := parsed.(map[string]any); ok {
			if obj["type"] == "text-delta" {
				if delta, ok := obj["delta"].(string); ok {
					p.deltas = append(p.deltas, delta)
				}
			}
		}
		chunks = append(chunks, parsed)
	}
	return chunks
}

// Text returns the concatenation, in event order, of every accumulated
// text-delta fragment.
func (p *Parser) Text() string {
	return strings.Join(p.deltas, "")
}

// HasText reports whether at least one text-delta event occurred.
func (p *Parser) HasText() bool {
	return len(p.deltas) > 0
}

func (p *Parser) doneChunk() map[string]any {
	if p.sentinel == SentinelFlag {
		return map[string]any{"done": true}
	}
	return map[string]any{"type": "done"}
}
