// Ganymede is an exchange-audit logger for Go services.
//
// It observes HTTP handler traffic and RPC procedure calls, reconstructs
// one structured record per completed exchange (including aggregation of
// server-sent-event streams), and appends each record as one JSON line to
// a size-bounded rotating log file.
//
// Usage:
//
//	# Validate a configuration file
//	ganymede lint --config ganymede.yaml
//
//	# Show version information
//	ganymede version
//
// The logging pipeline itself is a library; see examples/ for wiring the
// HTTP middleware and the RPC interceptor into a service.
package main

func main() {
	Execute()
}
