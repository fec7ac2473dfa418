package main

import (
	"os"

	"github.com/zahnno/visualize-txn/cmd/txnviz/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Set version information
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.HandleCLIError(err))
	}
}
