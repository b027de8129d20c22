// Package store owns the destination log file: an append-only NDJSON
// file that self-truncates under a size budget without corrupting record
// boundaries. Appends from concurrent exchanges are serialized behind one
// mutex so a rotation check can never race a write.
//
// Every step is best-effort: I/O failures are reported to the operational
// side channel (slog + metrics) and the write is dropped; nothing
// propagates into request handling.
package store
