package cmd

import (
	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/spf13/cobra"
)

// reproCmd checks environment reproducibility per tool.
var reproCmd = &cobra.Command{
	Use:   "repro [project-dir]",
	Short: "Check installation reproducibility for each tool",
	Long: `Install the project twice per tool and compare environment hashes.

A tool is reproducible when two independent installs from the same
lockfile produce byte-identical package sets. Each run hashes the
resolved environment and the check passes only when both hashes match.

Examples:
  # Check all tools
  pmbench repro

  # Check uv only against a specific project
  pmbench repro --tools uv ./my-project`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReproCheck(rootCtx, cfg, contract.NewLocalShellRunner()); err != nil {
			contract.LogFatal("Reproducibility check failed", err)
		}
	},
}
