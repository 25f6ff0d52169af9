package cmd

import (
	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/spf13/cobra"
)

// suiteCmd runs every benchmark stage end to end.
var suiteCmd = &cobra.Command{
	Use:   "suite [project-dir]",
	Short: "Run the full benchmark suite and generate a report",
	Long: `Run all benchmark stages back to back: speed, reproducibility, DX,
scoring, and report generation.

This is the one-shot equivalent of:
  pmbench bench && pmbench repro && pmbench dx && pmbench report

Each stage writes its artifact to the results directory, and the final
report stage aggregates them into ranked scores, a Markdown report with
charts, and a run history entry.

Examples:
  # Full suite against the current directory
  pmbench suite

  # Full suite for two tools, pruning old report snapshots
  pmbench suite --tools uv,piptools --prune`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSuite(rootCtx, cfg, contract.NewLocalShellRunner(), historyManager); err != nil {
			contract.LogFatal("Benchmark suite failed", err)
		}
	},
}
