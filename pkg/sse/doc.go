// Package sse implements the server-sent-event side of response capture:
// normalizing heterogeneous chunk payloads to text, deciding whether a
// response is an event stream, and extracting discrete event records from
// decoded stream writes.
//
// The three pieces run as a pipeline on every observed write:
//
//	DecodeChunk -> Classifier.ObserveBody -> Parser.Parse
//
// None of them ever returns an error: malformed input degrades to a raw
// text representation so interception can never disturb the handler that
// is being observed.
package sse
