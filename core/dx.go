package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// ExecuteDXEvaluation runs every developer-experience scenario against each
// configured tool and persists the results as a DX artifact.
// It serves as the main entry point for the 'dx' command.
func ExecuteDXEvaluation(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner) error {
	store := artifact.NewStore(cfg.ResultsDir)
	if err := store.EnsureLayout(); err != nil {
		return err
	}

	scenarios, err := DXScenarios()
	if err != nil {
		return err
	}

	report := make(schema.DXReport, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		logStage(cfg, "🧪", "=== Evaluating DX for %s ===", tool)
		report[tool] = evaluateToolDX(ctx, cfg, runner, tool, scenarios)
	}

	if _, err := store.SaveDX(report, time.Now()); err != nil {
		return err
	}

	printDXSummary(cfg, report)
	return nil
}

// evaluateToolDX sets up a fresh environment for a tool and runs all
// scenarios inside it. Setup failure records a setup error and skips the
// scenarios; scenario failures are ordinary data points.
func evaluateToolDX(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner, tool schema.Tool, scenarios []Scenario) schema.DXResult {
	result := schema.DXResult{Tool: tool}

	stageDir, err := prepareToolEnv(cfg, tool)
	if err != nil {
		msg := err.Error()
		result.SetupError = &msg
		logStage(cfg, "❌", "  Failed to set up environment for %s: %s", tool, msg)
		return result
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	setup := runner.Run(ctx, installCommand(tool), stageDir, cfg.InstallTimeout)
	if setup.Returncode != 0 {
		msg := setup.Stderr
		result.SetupError = &msg
		logStage(cfg, "❌", "  Failed to set up environment for %s", tool)
		fmt.Printf("  Error: %s\n", msg)
		return result
	}

	for _, scenario := range scenarios {
		command, ok := scenario.Commands[tool]
		if !ok {
			logStage(cfg, "⚠️", "  No command defined for %s in scenario %s", tool, scenario.Name)
			continue
		}
		command = withVenvActivation(tool, command)

		fmt.Printf("  Running scenario: %s\n", scenario.Name)
		res := runner.Run(ctx, command, stageDir, cfg.ScenarioTimeout)

		success := res.Returncode == 0
		var errMsg *string
		if !success {
			msg := res.Stderr
			errMsg = &msg
		}
		result.Scenarios = append(result.Scenarios, schema.ScenarioResult{
			Name:        scenario.Name,
			Description: scenario.Description,
			Command:     command,
			Success:     success,
			Returncode:  res.Returncode,
			Error:       errMsg,
			Output:      contract.TruncateOutput(res.Stdout),
		})

		if success {
			logStage(cfg, "✅", "    Success")
		} else {
			logStage(cfg, "❌", "    Failed")
		}
	}

	return result
}

// withVenvActivation prefixes pip-driven commands with a venv activation.
// The dot builtin is used because commands run under 'sh -c', where the
// bash-only 'source' does not exist. Poetry manages its own venv.
func withVenvActivation(tool schema.Tool, command string) string {
	if tool == schema.PoetryTool {
		return command
	}
	if strings.Contains(command, "pip-compile") || strings.Contains(command, "pip install") {
		return ". .venv/bin/activate && " + command
	}
	return command
}

// printDXSummary prints per-tool scenario success counts in canonical order.
func printDXSummary(cfg *contract.Config, report schema.DXReport) {
	tools := make([]schema.Tool, 0, len(report))
	for tool := range report {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)

	fmt.Println("\nDX Evaluation Summary:")
	for _, tool := range tools {
		result := report[tool]
		if result.SetupError != nil {
			logStage(cfg, "❌", "%s: environment setup failed", tool)
			continue
		}
		succeeded := 0
		for _, s := range result.Scenarios {
			if s.Success {
				succeeded++
			}
		}
		fmt.Printf("%s: %d/%d scenarios succeeded\n", tool, succeeded, len(result.Scenarios))
	}
}
