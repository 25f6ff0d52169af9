package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.EndRun(1, time.Now(), 4)
	assert.NoError(t, err)

	err = store.RecordToolScore(1, schema.ToolScore{Tool: schema.UvTool})
	assert.NoError(t, err)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestRunStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginRun
	startTime := time.Now()
	configParams := map[string]any{
		"results_dir": "/test/results",
		"tool_count":  4,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test RecordToolScore
	score := schema.ToolScore{
		Tool:         schema.UvTool,
		SpeedScore:   100.0,
		ReproScore:   100.0,
		DXScore:      83.3,
		UnifiedScore: 96.66,
	}
	err = store.RecordToolScore(runID, score)
	assert.NoError(t, err)

	// Test EndRun
	endTime := time.Now()
	err = store.EndRun(runID, endTime, 1)
	assert.NoError(t, err)
}

func TestRunStore_MultipleTools(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "multi-tool"})
	require.NoError(t, err)

	for i, tool := range schema.AllTools {
		score := schema.ToolScore{
			Tool:         tool,
			SpeedScore:   float64(100 - i*10),
			ReproScore:   100.0,
			DXScore:      50.0,
			UnifiedScore: float64(90 - i*5),
		}
		err = store.RecordToolScore(runID, score)
		assert.NoError(t, err)
	}

	err = store.EndRun(runID, time.Now(), len(schema.AllTools))
	assert.NoError(t, err)

	scores, err := store.GetAllToolScores()
	require.NoError(t, err)
	assert.Len(t, scores, len(schema.AllTools))
}

func TestRunStore_GetStatus(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	// Record a full run
	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordToolScore(runID, schema.ToolScore{Tool: schema.MakeTool, UnifiedScore: 42.0}))
	require.NoError(t, store.EndRun(runID, time.Now(), 1))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 1, status.TotalScores)
	assert.Equal(t, int64(1), status.TableSizes[runsTable])
	assert.Equal(t, int64(1), status.TableSizes[toolScoresTable])
	assert.False(t, status.LastRunTime.IsZero())
}

func TestRunStore_GetAllRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	firstID, err := store.BeginRun(time.Now(), map[string]any{"iteration": 1})
	require.NoError(t, err)
	require.NoError(t, store.EndRun(firstID, time.Now(), 2))

	secondID, err := store.BeginRun(time.Now(), map[string]any{"iteration": 2})
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Runs come back oldest first
	assert.Equal(t, firstID, runs[0].RunID)
	assert.Equal(t, secondID, runs[1].RunID)

	// Completed run has end_time and duration; in-flight run does not
	assert.NotNil(t, runs[0].EndTime)
	assert.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(2), runs[0].ToolCount)
	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].RunDurationMs)

	require.NotNil(t, runs[1].ConfigParams)
	assert.Contains(t, *runs[1].ConfigParams, `"iteration":2`)
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestClearHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))

	// Clearing a missing file is fine too
	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
}

func TestClearHistory_RequiresPath(t *testing.T) {
	err := ClearHistory(schema.SQLiteBackend, "", "")
	assert.Error(t, err)
}

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest, then back down to zero
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
}
