// Package core has core logic for benchmarking, scoring and ranking.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// projectFiles are copied into every staging environment when present.
var projectFiles = []string{"pyproject.toml", "requirements.in", "requirements.txt", "Makefile"}

// installCommand is how every tool provisions its environment inside a
// staging directory.
func installCommand(tool schema.Tool) string {
	return fmt.Sprintf("./scripts/install_%s.sh", tool)
}

// prepareToolEnv creates a fresh staging directory under the work dir and
// seeds it with the project files and the tool's install script.
func prepareToolEnv(cfg *contract.Config, tool schema.Tool) (string, error) {
	stageDir, err := os.MkdirTemp(cfg.WorkDir, fmt.Sprintf("pmbench-%s-", tool))
	if err != nil {
		return "", fmt.Errorf("cannot create staging directory for %s: %w", tool, err)
	}

	for _, name := range projectFiles {
		src := filepath.Join(cfg.ProjectDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyFile(src, filepath.Join(stageDir, name), 0o644); err != nil {
			return "", err
		}
	}

	scriptsDir := filepath.Join(stageDir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create scripts directory for %s: %w", tool, err)
	}

	scriptName := fmt.Sprintf("install_%s.sh", tool)
	src := filepath.Join(cfg.ProjectDir, "scripts", scriptName)
	if err := copyFile(src, filepath.Join(scriptsDir, scriptName), 0o755); err != nil {
		return "", fmt.Errorf("install script for %s is missing: %w", tool, err)
	}

	return stageDir, nil
}

// copyFile copies src to dst with the given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, perm)
}

// logStage prints a stage header, honoring the emoji preference.
func logStage(cfg *contract.Config, emoji, format string, args ...any) {
	if cfg.UseEmojis {
		fmt.Printf(emoji+" "+format+"\n", args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}

// ExecuteSuite runs every benchmark stage in order and finishes with a
// report. A broken tool environment aborts the remaining stages since
// their results would be meaningless.
func ExecuteSuite(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner, mgr contract.HistoryManager) error {
	if err := ExecuteSpeedBenchmark(ctx, cfg, runner); err != nil {
		return err
	}
	if err := ExecuteDXEvaluation(ctx, cfg, runner); err != nil {
		return err
	}
	if err := ExecuteReproCheck(ctx, cfg, runner); err != nil {
		return err
	}
	return ExecuteReport(ctx, cfg, mgr)
}
