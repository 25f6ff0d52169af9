package cmd

import (
	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd scores existing artifacts and renders the report.
var reportCmd = &cobra.Command{
	Use:   "report [project-dir]",
	Short: "Score the newest artifacts and render the Markdown report",
	Long: `Aggregate the newest benchmark artifacts into unified tool scores and
render the Markdown report with charts.

The report stage loads whatever artifacts exist (speed, reproducibility,
DX), computes weighted scores per tool, records the run in history, and
writes a timestamped report snapshot plus a latest_report.md copy.

Missing artifacts score zero for their metric unless
--renormalize-weights is set, in which case weights are redistributed
over the metrics that are present.

Examples:
  # Score and render from the default results directory
  pmbench report

  # Print scores as JSON without writing a snapshot
  pmbench report --json-only --output json

  # Keep only the newest snapshots
  pmbench report --prune`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Report generation failed", err)
		}
	},
}
