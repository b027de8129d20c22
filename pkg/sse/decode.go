package sse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// byteListPattern matches the degenerate output of stringifying a byte
// array without UTF-8 decoding, e.g. "100,97,116,97".
var byteListPattern = regexp.MustCompile(`^\d{1,3}(,\d{1,3})*$`)

// DecodeChunk normalizes an unconstrained stream-write payload into
// best-effort UTF-8 text. Binary byte sequences are decoded directly,
// text passes through unchanged, and anything else is stringified; a
// stringified form that looks like a comma-separated decimal byte list is
// reinterpreted as bytes. Decoding failure degrades to the raw stringified
// form, never to an error.
func DecodeChunk(v any) string {
	switch payload := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(payload)
	case string:
		return payload
	default:
		s := fmt.Sprint(v)
		if byteListPattern.MatchString(s) {
			if decoded, ok := decodeByteList(s); ok {
				return decoded
			}
		}
		return s
	}
}

// decodeByteList reinterprets "100,97,116,97" as the bytes it names.
// Returns ok=false when any element is out of byte range.
func decodeByteList(s string) (string, bool) {
	parts := strings.Split(s, ",")
	buf := make([]byte, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		buf = append(buf, byte(n))
	}
	return string(buf), true
}
