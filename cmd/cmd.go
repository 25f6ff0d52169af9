// Package cmd defines the command-line interface for pmbench.
package cmd

import (
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(dxCmd)
	rootCmd.AddCommand(reproCmd)
	rootCmd.AddCommand(suiteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("tools", "t", "", "Comma-separated list of tools to benchmark (make,poetry,piptools,uv); empty means all")
	rootCmd.PersistentFlags().String("results-dir", contract.DefaultResultsDir, "Directory for benchmark artifacts and reports")
	rootCmd.PersistentFlags().String("work-dir", "", "Directory for scratch virtualenvs (defaults to the system temp dir)")
	rootCmd.PersistentFlags().Int("install-timeout", contract.DefaultInstallTimeoutSec, "Timeout in seconds for a single install command")
	rootCmd.PersistentFlags().Int("scenario-timeout", contract.DefaultScenarioTimeoutSec, "Timeout in seconds for a single DX scenario command")
	rootCmd.PersistentFlags().Int("repro-timeout", contract.DefaultReproTimeoutSec, "Timeout in seconds for a single reproducibility run")
	rootCmd.PersistentFlags().IntP("iterations", "n", contract.DefaultIterations, "Number of timed install iterations per tool")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in stage headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("timestamp", "", "Reuse an existing snapshot timestamp (layout 20060102_150405)")
	reportCmd.Flags().Bool("json-only", false, "Skip the Markdown/chart snapshot and print scores only")
	reportCmd.Flags().Bool("prune", false, "Prune old report snapshots after writing")
	reportCmd.Flags().Bool("renormalize-weights", false, "Renormalize score weights over present metrics instead of penalizing missing ones")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
