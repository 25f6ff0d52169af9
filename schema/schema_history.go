package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalScores   int              `json:"total_scores"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the pmbench_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	ToolCount     int32
	ConfigParams  *string
}

// ToolScoreRecord represents a row from the pmbench_tool_scores table.
type ToolScoreRecord struct {
	RunID        int64
	Tool         string
	SpeedScore   float64
	ReproScore   float64
	DXScore      float64
	UnifiedScore float64
	RecordedAt   time.Time
}
