package cmd

import (
	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/spf13/cobra"
)

// dxCmd evaluates developer experience scenarios per tool.
var dxCmd = &cobra.Command{
	Use:   "dx [project-dir]",
	Short: "Evaluate developer experience scenarios for each tool",
	Long: `Run a fixed set of developer experience scenarios for each selected tool.

Scenarios cover the everyday workflows that shape how a tool feels in
practice: adding a dependency, removing one, listing the environment,
handling a bad package name, and similar. Each scenario records the
command, its outcome, and its runtime.

Examples:
  # Evaluate all tools
  pmbench dx

  # Evaluate a single tool with a longer scenario timeout
  pmbench dx --tools poetry --scenario-timeout 300`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDXEvaluation(rootCtx, cfg, contract.NewLocalShellRunner()); err != nil {
			contract.LogFatal("DX evaluation failed", err)
		}
	},
}
