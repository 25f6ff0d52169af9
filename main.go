// main holds the entry logic for pmbench CLI.
package main

import (
	"github.com/huangsam/pmbench/cmd"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/internal/history"
)

// main wires the run history manager into the CLI, runs the root command,
// and tears down persistence and profiling on the way out.
func main() {
	cmd.SetHistoryManager(history.Manager)

	err := cmd.Execute()

	// Close stores before exiting so SQLite flushes to disk.
	history.CloseStores()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
