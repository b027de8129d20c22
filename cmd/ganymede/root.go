package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ganymede",
	Short: "Ganymede - exchange-audit logger for HTTP and RPC surfaces",
	Long: `Ganymede observes HTTP handler traffic and RPC procedure calls and
emits one structured JSON record per completed exchange to a rotating,
size-bounded log file, with transparent capture of server-sent-event
streams.

The pipeline is a library (pkg/capture, pkg/rpcintercept, pkg/store);
this binary provides supporting tooling around its configuration.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
