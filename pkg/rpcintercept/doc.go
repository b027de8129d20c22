// Package rpcintercept wraps RPC procedure calls the way capture wraps
// HTTP exchanges: it measures duration, captures input, output and error,
// and emits exactly one record per call. The downstream error, if any, is
// returned unchanged after logging; the interceptor never swallows call
// failures.
package rpcintercept
