// Package parquet provides data structures and functions for exporting
// benchmark run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/pmbench/schema"
	"github.com/parquet-go/parquet-go"
)

// BenchmarkRun represents a single benchmark run with metadata.
// This struct maps to the pmbench_runs database table.
type BenchmarkRun struct {
	// RunID is the unique identifier for this benchmark run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the benchmark run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// ToolCount is the number of tools scored in this run
	ToolCount int32 `parquet:"tool_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ToolScore represents the final scores for a single tool in a benchmark run.
// This struct maps to the pmbench_tool_scores database table.
type ToolScore struct {
	// RunID references the parent benchmark run
	RunID int64 `parquet:"run_id,snappy"`

	// Tool is the package manager that was scored
	Tool string `parquet:"tool,snappy"`

	// RecordedAt is when the score was stored (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// SpeedScore is the installation speed score (0-100)
	SpeedScore float64 `parquet:"speed_score,snappy"`

	// ReproScore is the reproducibility score (0 or 100)
	ReproScore float64 `parquet:"repro_score,snappy"`

	// DXScore is the developer experience score (0-100)
	DXScore float64 `parquet:"dx_score,snappy"`

	// UnifiedScore is the weighted combination of the three metrics
	UnifiedScore float64 `parquet:"unified_score,snappy"`
}

// WriteRunsParquet writes a slice of BenchmarkRun structs to a Parquet file.
func WriteRunsParquet(data []BenchmarkRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the BenchmarkRun struct tags
	writer := parquet.NewGenericWriter[BenchmarkRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteToolScoresParquet writes a slice of ToolScore structs to a Parquet file.
func WriteToolScoresParquet(data []ToolScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ToolScore struct tags
	writer := parquet.NewGenericWriter[ToolScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchBenchmarkRuns generates sample BenchmarkRun data for demonstration.
func MockFetchBenchmarkRuns() []BenchmarkRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 45*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"results_dir":"results","renormalize_weights":false,"tool_count":4}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 30*time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"results_dir":"results","renormalize_weights":true,"tool_count":2}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []BenchmarkRun{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			ToolCount:     4,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			ToolCount:     2,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			ToolCount:     0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchToolScores generates sample ToolScore data for demonstration.
func MockFetchToolScores() []ToolScore {
	now := time.Now()

	return []ToolScore{
		{
			RunID:        1,
			Tool:         string(schema.UvTool),
			RecordedAt:   now.Add(-1 * time.Hour),
			SpeedScore:   100.0,
			ReproScore:   100.0,
			DXScore:      83.3,
			UnifiedScore: 96.66,
		},
		{
			RunID:        1,
			Tool:         string(schema.PoetryTool),
			RecordedAt:   now.Add(-1 * time.Hour),
			SpeedScore:   42.5,
			ReproScore:   100.0,
			DXScore:      66.7,
			UnifiedScore: 70.34,
		},
		{
			RunID:        2,
			Tool:         string(schema.MakeTool),
			RecordedAt:   now.Add(-23 * time.Hour),
			SpeedScore:   61.8,
			ReproScore:   0.0,
			DXScore:      50.0,
			UnifiedScore: 34.72,
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to BenchmarkRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []BenchmarkRun {
	result := make([]BenchmarkRun, len(records))
	for i, record := range records {
		result[i] = BenchmarkRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			ToolCount:     record.ToolCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertToolScoreRecords converts schema.ToolScoreRecord to ToolScore for Parquet export.
func ConvertToolScoreRecords(records []schema.ToolScoreRecord) []ToolScore {
	result := make([]ToolScore, len(records))
	for i, record := range records {
		result[i] = ToolScore{
			RunID:        record.RunID,
			Tool:         record.Tool,
			RecordedAt:   record.RecordedAt,
			SpeedScore:   record.SpeedScore,
			ReproScore:   record.ReproScore,
			DXScore:      record.DXScore,
			UnifiedScore: record.UnifiedScore,
		}
	}
	return result
}
