// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/pmbench/schema"
)

// CommandRunner defines the single operation every benchmark stage uses to
// reach the outside world. This allows the benchmark logic to be tested
// without spawning real package managers.
type CommandRunner interface {
	// Run executes a shell command in dir with the given timeout.
	// Failures to spawn and timeouts are folded into the result as
	// Returncode -1; a CommandResult is always returned.
	Run(ctx context.Context, command string, dir string, timeout time.Duration) schema.CommandResult
}

// HistoryManager defines the interface for managing run history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking benchmark runs and storing scores.
type RunStore interface {
	// BeginRun creates a new benchmark run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the benchmark run with completion data
	EndRun(runID int64, endTime time.Time, toolCount int) error

	// RecordToolScore stores final scores for a tool
	RecordToolScore(runID int64, score schema.ToolScore) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllToolScores returns every recorded tool score, oldest first
	GetAllToolScores() ([]schema.ToolScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
