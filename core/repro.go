package core

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// Environment hash extraction. A labeled hash printed by the install
// script wins; otherwise any bare 32-hex token counts; the pip freeze
// digest is the fallback of last resort.
var (
	labeledHashPattern = regexp.MustCompile(`(?i)env[ _-]?hash[^0-9a-fA-F\n]*([0-9a-fA-F]{32})`)
	bareHashPattern    = regexp.MustCompile(`\b[0-9a-f]{32}\b`)
)

// ExecuteReproCheck installs each tool's environment several times and
// compares environment hashes across iterations.
// It serves as the main entry point for the 'repro' command.
func ExecuteReproCheck(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner) error {
	store := artifact.NewStore(cfg.ResultsDir)
	if err := store.EnsureLayout(); err != nil {
		return err
	}

	report := make(schema.ReproReport, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		logStage(cfg, "🔁", "=== Testing reproducibility of %s ===", tool)
		report[tool] = checkToolRepro(ctx, cfg, runner, tool)
	}

	if _, err := store.SaveRepro(report, time.Now()); err != nil {
		return err
	}

	printReproSummary(cfg, report)
	return nil
}

// checkToolRepro runs all iterations for one tool. Every iteration gets a
// fresh staging directory so nothing leaks between installs.
func checkToolRepro(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner, tool schema.Tool) schema.ReproResult {
	result := schema.ReproResult{Tool: tool}

	for i := range cfg.Iterations {
		fmt.Printf("  Iteration %d/%d...\n", i+1, cfg.Iterations)

		stageDir, err := prepareToolEnv(cfg, tool)
		if err != nil {
			msg := err.Error()
			result.Runs = append(result.Runs, schema.ReproRun{Returncode: -1, Error: &msg})
			result.Hashes = append(result.Hashes, nil)
			continue
		}

		run := runner.Run(ctx, installCommand(tool), stageDir, cfg.ReproTimeout)
		var runErr *string
		if run.Returncode != 0 {
			msg := run.Stderr
			runErr = &msg
		}
		result.Runs = append(result.Runs, schema.ReproRun{Returncode: run.Returncode, Error: runErr})

		hash := extractEnvHash(ctx, runner, stageDir, run, cfg.ReproTimeout)
		result.Hashes = append(result.Hashes, hash)
		if hash != nil {
			fmt.Printf("    Environment hash: %s\n", *hash)
		} else {
			fmt.Println("    Environment hash: <none>")
		}

		_ = os.RemoveAll(stageDir)
	}

	result.Reproducible = isReproducible(result.Hashes)
	fmt.Printf("  Reproducible: %t\n", result.Reproducible)
	return result
}

// extractEnvHash determines the environment hash for one iteration.
func extractEnvHash(ctx context.Context, runner contract.CommandRunner, dir string, install schema.CommandResult, timeout time.Duration) *string {
	combined := install.Stdout + "\n" + install.Stderr

	if m := labeledHashPattern.FindStringSubmatch(combined); m != nil {
		h := strings.ToLower(m[1])
		return &h
	}
	if m := bareHashPattern.FindString(combined); m != "" {
		return &m
	}

	// No printed hash; digest the frozen package list instead.
	freeze := runner.Run(ctx, ".venv/bin/python -m pip freeze", dir, timeout)
	if freeze.Returncode != 0 {
		return nil
	}
	h := hashPackageList(freeze.Stdout)
	return &h
}

// hashPackageList digests a pip freeze listing, sorted so ordering
// differences between pip versions do not break hash equality.
func hashPackageList(freezeOutput string) string {
	trimmed := strings.TrimRight(freezeOutput, "\n")
	var canonical string
	if trimmed != "" {
		lines := strings.Split(trimmed, "\n")
		sort.Strings(lines)
		canonical = strings.Join(lines, "\n") + "\n"
	}
	sum := md5.Sum([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// isReproducible reports whether all iterations produced one identical hash.
func isReproducible(hashes []*string) bool {
	if len(hashes) == 0 {
		return false
	}
	distinct := make(map[string]struct{})
	for _, h := range hashes {
		if h == nil {
			return false
		}
		distinct[*h] = struct{}{}
	}
	return len(distinct) == 1
}

// printReproSummary prints per-tool verdicts in canonical order.
func printReproSummary(cfg *contract.Config, report schema.ReproReport) {
	tools := make([]schema.Tool, 0, len(report))
	for tool := range report {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)

	fmt.Println("\n=== Reproducibility Summary ===")
	for _, tool := range tools {
		if report[tool].Reproducible {
			logStage(cfg, "✅", "%s: Reproducible", tool)
		} else {
			logStage(cfg, "❌", "%s: Not reproducible", tool)
		}
	}
}
