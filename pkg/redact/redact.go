// Package redact masks configured sensitive field names in arbitrary
// nested data before it is serialized into a log record.
package redact

import "strings"

// Marker replaces the value of every redacted field.
const Marker = "[REDACTED]"

// Redactor recursively masks values whose key name (lowercased) is in the
// configured field set. It is stateless and safe for concurrent use.
type Redactor struct {
	fields map[string]struct{}
}

// DefaultFields is the default redaction set.
var DefaultFields = []string{"password", "token", "authorization", "cookie"}

// New creates a Redactor for the given field names. Matching is
// case-insensitive. A nil or empty list falls back to DefaultFields.
func New(fields []string) *Redactor {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.ToLower(f)] = struct{}{}
	}
	return &Redactor{fields: set}
}

// Apply returns v with every occurrence of a configured field, at any
// nesting depth, replaced by Marker. Maps and slices are copied, scalars
// are returned untouched. Input is expected to originate from parsed
// request/response payloads and is therefore acyclic.
func (r *Redactor) Apply(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if _, hit := r.fields[strings.ToLower(k)]; hit {
				out[k] = Marker
				continue
			}
			out[k] = r.Apply(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = r.Apply(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, inner := range val {
			if _, hit := r.fields[strings.ToLower(k)]; hit {
				out[k] = Marker
				continue
			}
			out[k] = inner
		}
		return out
	default:
		return v
	}
}
