// Command homeroute is the CLI and plugin host shim for the homeroute
// routing plugin.
package main

import (
	"fmt"
	"os"

	"github.com/homeroute/homeroute/internal/cli"
	"github.com/homeroute/homeroute/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
