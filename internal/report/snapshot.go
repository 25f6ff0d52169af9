package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
)

// WriteSnapshot renders the charts and Markdown report into a timestamped
// snapshot directory under the store's reports directory, then copies the
// Markdown to the fixed latest-report path. It returns the snapshot directory.
// An empty timestamp derives one from the report's generation time.
func WriteSnapshot(store *artifact.Store, data *Data, timestamp string) (string, error) {
	ts := timestamp
	if ts == "" {
		ts = data.GeneratedAt.Format(contract.TimestampLayout)
	}

	snapshotDir := filepath.Join(store.ReportsDir(), snapshotPrefix+ts)
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if err := renderSpeedChart(data, filepath.Join(snapshotDir, SpeedChartFile)); err != nil {
		return "", err
	}
	if err := renderReproChart(data, filepath.Join(snapshotDir, ReproChartFile)); err != nil {
		return "", err
	}
	if err := renderDXChart(data, filepath.Join(snapshotDir, DXChartFile)); err != nil {
		return "", err
	}

	markdown := []byte(RenderMarkdown(data))
	reportPath := filepath.Join(snapshotDir, ReportFile)
	if err := os.WriteFile(reportPath, markdown, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	// Overwrite the mutable latest-report pointer
	latestPath := filepath.Join(store.ResultsDir(), LatestReportFile)
	if err := os.WriteFile(latestPath, markdown, 0o644); err != nil {
		return "", fmt.Errorf("failed to write latest report: %w", err)
	}

	return snapshotDir, nil
}

// PruneSnapshots removes all but the newest keep snapshot directories.
// Snapshot directory names embed a sortable timestamp, so lexicographic
// order is age order.
func PruneSnapshots(reportsDir string, keep int) error {
	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read reports directory: %w", err)
	}

	var snapshots []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), snapshotPrefix) {
			snapshots = append(snapshots, entry.Name())
		}
	}
	if len(snapshots) <= keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-keep] {
		if err := os.RemoveAll(filepath.Join(reportsDir, name)); err != nil {
			return fmt.Errorf("failed to remove snapshot %s: %w", name, err)
		}
	}
	return nil
}
