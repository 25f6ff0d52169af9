package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScores() []schema.ToolScore {
	return []schema.ToolScore{
		{Tool: schema.UvTool, SpeedScore: 100, ReproScore: 100, DXScore: 83.3, UnifiedScore: 96.66},
		{Tool: schema.PoetryTool, SpeedScore: 12.5, ReproScore: 100, DXScore: 66.7, UnifiedScore: 58.34},
		{Tool: schema.MakeTool, SpeedScore: 0, ReproScore: 0, DXScore: 33.3, UnifiedScore: 6.66},
	}
}

func TestWriteScoreTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Width: 120, HistoryBackend: schema.SQLiteBackend}

	require.NoError(t, writeScoreTable(sampleScores(), cfg, 2*time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "uv")
	assert.Contains(t, out, "96.7")
	assert.Contains(t, out, "Excellent")
	assert.Contains(t, out, "Poor")
	assert.Contains(t, out, "Scored 3 tools in 2s. History backend: sqlite")
}

func TestWriteScoreTableDisplayNames(t *testing.T) {
	scores := []schema.ToolScore{
		{Tool: schema.PiptoolsTool, SpeedScore: 70, ReproScore: 100, DXScore: 50, UnifiedScore: 78},
		{Tool: schema.PoetryTool, SpeedScore: 12.5, ReproScore: 100, DXScore: 66.7, UnifiedScore: 58.34},
	}
	var buf bytes.Buffer
	cfg := &contract.Config{Width: 120, HistoryBackend: schema.NoneBackend}

	require.NoError(t, writeScoreTable(scores, cfg, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "pip-tools")
	assert.Contains(t, out, "Poetry")
	assert.NotContains(t, out, "piptools")
}

func TestWriteScoreTableCompact(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Width: 40, HistoryBackend: schema.NoneBackend}

	require.NoError(t, writeScoreTable(sampleScores(), cfg, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "UNIFIED")
	assert.NotContains(t, out, "SPEED")
	assert.NotContains(t, out, "REPRO")
}

func TestWriteJSONResultsForScores(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForScores(&buf, sampleScores()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "uv", decoded[0]["tool"])
	assert.Equal(t, "Excellent", decoded[0]["label"])
	assert.Equal(t, "Poor", decoded[2]["label"])
}

func TestWriteScoreResultsCSVToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "scores.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outputFile,
	}

	require.NoError(t, WriteScoreResults(sampleScores(), cfg, time.Second))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "rank,tool,unified_score,speed_score,repro_score,dx_score,label", lines[0])
	assert.Equal(t, "1,uv,96.66,100.00,100.00,83.30,Excellent", lines[1])
	assert.Equal(t, "3,make,6.66,0.00,0.00,33.30,Poor", lines[3])
}

func TestWriteScoreResultsJSONToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "scores.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: outputFile,
	}

	require.NoError(t, WriteScoreResults(sampleScores(), cfg, time.Second))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Len(t, decoded, 3)
}

func TestGetTableWidthOverride(t *testing.T) {
	cfg := &contract.Config{Width: 42}
	assert.Equal(t, 42, getTableWidth(cfg))
}
