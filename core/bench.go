package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// ErrBenchAborted signals that a tool environment is broken beyond a
// normal command failure, e.g. the tool binary itself is missing. The
// partial artifact is still persisted before this error propagates.
var ErrBenchAborted = errors.New("benchmark aborted")

// fatalStderrMarkers distinguish a broken environment from an ordinary
// failed install. Matching is case-sensitive on purpose; these are the
// literal strings the shell and Python emit.
var fatalStderrMarkers = []string{
	"No such file or directory",
	"command not found",
	"No module named",
}

// isFatalStderr reports whether stderr indicates a broken tool environment.
func isFatalStderr(stderr string) bool {
	for _, marker := range fatalStderrMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}

// ExecuteSpeedBenchmark times a clean dependency installation for each
// configured tool and persists the results as an installation artifact.
// It serves as the main entry point for the 'bench' command.
func ExecuteSpeedBenchmark(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner) error {
	store := artifact.NewStore(cfg.ResultsDir)
	if err := store.EnsureLayout(); err != nil {
		return err
	}

	report := &schema.InstallationReport{
		SystemInfo: CaptureSystemInfo(ctx, runner),
		Results:    make(map[schema.Tool]schema.CommandResult),
	}

	var abortErr error
	for _, tool := range cfg.Tools {
		logStage(cfg, "📦", "Testing %s installation...", tool)

		stageDir, err := prepareToolEnv(cfg, tool)
		if err != nil {
			return err
		}

		result := runner.Run(ctx, installCommand(tool), stageDir, cfg.InstallTimeout)
		result.Stdout = contract.TruncateOutput(result.Stdout)
		report.Results[tool] = result
		_ = os.RemoveAll(stageDir)

		fmt.Printf("%s completed in %.2fs\n", tool, result.ExecutionTime)
		if result.Returncode != 0 {
			fmt.Printf("Error running %s:\n%s\n", tool, result.Stderr)
		}

		if isFatalStderr(result.Stderr) {
			abortErr = fmt.Errorf("%w: %s environment is broken: %s", ErrBenchAborted, tool, strings.TrimSpace(result.Stderr))
			break
		}
	}

	// Persist whatever completed, even on abort, so a later report can
	// still use the partial data.
	if _, err := store.SaveInstallation(report, time.Now()); err != nil {
		return err
	}

	printSpeedSummary(report)
	return abortErr
}

// printSpeedSummary prints per-tool install times, fastest first.
func printSpeedSummary(report *schema.InstallationReport) {
	tools := make([]schema.Tool, 0, len(report.Results))
	for tool := range report.Results {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return report.Results[tools[i]].ExecutionTime < report.Results[tools[j]].ExecutionTime
	})

	fmt.Println("\nInstallation Speed Summary:")
	for _, tool := range tools {
		fmt.Printf("%s: %.2fs\n", tool, report.Results[tool].ExecutionTime)
	}
}
