// Package exchange defines the data model shared by the HTTP and RPC
// interceptors: the LogRecord emitted once per completed exchange, the
// correlation identifier that ties a record to one request or call, and
// the per-exchange metadata accumulator callers attach context to.
package exchange
