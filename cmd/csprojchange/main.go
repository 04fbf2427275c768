package main

import (
	"context"
	"os"

	"github.com/indaco/csprojchange/internal/cli"
	"github.com/indaco/csprojchange/internal/core"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		os.Exit(1)
	}
}

// runCLI runs the tool against the real file system. Errors are already
// reported on stdout when it returns.
func runCLI(args []string) error {
	return cli.Execute(context.Background(), args, core.NewOSFileSystem(), os.Stdout)
}
