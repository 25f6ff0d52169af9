package cmd

import (
	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/spf13/cobra"
)

// benchCmd measures raw install speed per tool.
var benchCmd = &cobra.Command{
	Use:   "bench [project-dir]",
	Short: "Time dependency installation for each tool",
	Long: `Run timed installs for each selected tool against the project.

For every tool, pmbench creates a fresh virtual environment in the work
directory, runs the tool's install command, and records wall-clock time
plus captured output. Results are written as a JSON artifact under the
results directory for later scoring and reporting.

Examples:
  # Benchmark all tools against the current directory
  pmbench bench

  # Benchmark only uv and poetry with 5 iterations
  pmbench bench --tools uv,poetry --iterations 5 ./my-project`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSpeedBenchmark(rootCtx, cfg, contract.NewLocalShellRunner()); err != nil {
			contract.LogFatal("Speed benchmark failed", err)
		}
	},
}
