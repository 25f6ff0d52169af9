package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pmbench/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	data := MockFetchBenchmarkRuns()
	require.NoError(t, WriteRunsParquet(data, outputPath))

	// Read the file back and verify round-trip
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[BenchmarkRun](file)
	defer func() { _ = reader.Close() }()

	rows := make([]BenchmarkRun, len(data))
	n, err := reader.Read(rows)
	require.Equal(t, len(data), n)
	_ = err // io.EOF is acceptable once all rows are consumed

	assert.Equal(t, data[0].RunID, rows[0].RunID)
	assert.Equal(t, data[0].ToolCount, rows[0].ToolCount)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *rows[0].ConfigParams)

	// Nullable fields survive as nulls
	assert.Nil(t, rows[2].EndTime)
	assert.Nil(t, rows[2].RunDurationMs)
	assert.Nil(t, rows[2].ConfigParams)
}

func TestWriteToolScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")

	data := MockFetchToolScores()
	require.NoError(t, WriteToolScoresParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ToolScore](file)
	defer func() { _ = reader.Close() }()

	rows := make([]ToolScore, len(data))
	n, err := reader.Read(rows)
	require.Equal(t, len(data), n)
	_ = err

	assert.Equal(t, string(schema.UvTool), rows[0].Tool)
	assert.InDelta(t, 96.66, rows[0].UnifiedScore, 1e-9)
	assert.InDelta(t, 0.0, rows[2].ReproScore, 1e-9)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Minute)
	durationMs := int32(60000)
	params := `{"tool_count":4}`

	records := []schema.RunRecord{
		{
			RunID:         7,
			StartTime:     now,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			ToolCount:     4,
			ConfigParams:  &params,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(4), converted[0].ToolCount)
	assert.Equal(t, &durationMs, converted[0].RunDurationMs)
}

func TestConvertToolScoreRecords(t *testing.T) {
	records := []schema.ToolScoreRecord{
		{
			RunID:        7,
			Tool:         string(schema.PiptoolsTool),
			SpeedScore:   55.5,
			ReproScore:   100.0,
			DXScore:      66.7,
			UnifiedScore: 75.54,
			RecordedAt:   time.Now(),
		},
	}

	converted := ConvertToolScoreRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, string(schema.PiptoolsTool), converted[0].Tool)
	assert.InDelta(t, 75.54, converted[0].UnifiedScore, 1e-9)
}
