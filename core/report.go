package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/internal/outwriter"
	"github.com/huangsam/pmbench/internal/report"
)

// ExecuteReport loads the newest artifacts, computes unified scores,
// renders the Markdown report with charts, and records the run in the
// history store. It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	store := artifact.NewStore(cfg.ResultsDir)

	install, err := store.LoadInstallation()
	if err != nil {
		return err
	}
	repro, err := store.LoadRepro()
	if err != nil {
		return err
	}
	dx, err := store.LoadDX()
	if err != nil {
		return err
	}
	if install == nil && repro == nil && dx == nil {
		return errors.New("no benchmark artifacts found; run 'pmbench suite' first")
	}

	scores := BuildToolScores(install, repro, dx, cfg.RenormalizeWeights)
	ranked := RankToolScores(scores)

	// --- Run Tracking (if configured) ---
	var runID int64
	runStore := mgr.GetRunStore()
	if runStore != nil {
		configParams := map[string]any{
			"results_dir":         cfg.ResultsDir,
			"renormalize_weights": cfg.RenormalizeWeights,
			"tool_count":          len(ranked),
		}
		runID, err = runStore.BeginRun(start, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			for _, score := range ranked {
				if err := runStore.RecordToolScore(runID, score); err != nil {
					contract.LogWarn("Failed to record tool score", err)
				}
			}
		}
	}

	data := &report.Data{
		GeneratedAt:  time.Now(),
		Installation: install,
		Repro:        repro,
		DX:           dx,
		Scores:       ranked,
	}

	if !cfg.JSONOnly {
		snapshotDir, err := report.WriteSnapshot(store, data, cfg.ReportTimestamp)
		if err != nil {
			return err
		}
		logStage(cfg, "📊", "Report written to %s", snapshotDir)
	}

	if cfg.Prune {
		if err := report.PruneSnapshots(store.ReportsDir(), report.KeepSnapshots); err != nil {
			contract.LogWarn("Cannot prune old report snapshots", err)
		}
	}

	if runStore != nil && runID > 0 {
		if err := runStore.EndRun(runID, time.Now(), len(ranked)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	duration := time.Since(start)
	writer := outwriter.NewOutWriter()
	return writer.WriteScores(ranked, cfg, duration)
}
