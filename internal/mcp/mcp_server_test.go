package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	mcp_internal "github.com/huangsam/pmbench/internal/mcp"
	"github.com/huangsam/pmbench/internal/report"
	"github.com/huangsam/pmbench/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nilManager satisfies contract.HistoryManager without a backing store.
type nilManager struct{}

func (nilManager) GetRunStore() contract.RunStore { return nil }

func TestMCPServerTools(t *testing.T) {
	resultsDir := t.TempDir()
	baseCfg := &contract.Config{ResultsDir: resultsDir}

	s := mcp_internal.NewMCPServer(baseCfg, nilManager{})
	ctx := context.Background()

	t.Run("get_benchmark_scores without artifacts", func(t *testing.T) {
		tool := s.GetTool("get_benchmark_scores")
		require.NotNil(t, tool, "Tool get_benchmark_scores should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_benchmark_scores",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no benchmark artifacts found")
	})

	t.Run("get_benchmark_scores with installation artifact", func(t *testing.T) {
		store := artifact.NewStore(resultsDir)
		require.NoError(t, store.EnsureLayout())
		_, err := store.SaveInstallation(&schema.InstallationReport{
			Results: map[schema.Tool]schema.CommandResult{
				schema.UvTool:     {Returncode: 0, ExecutionTime: 1.5},
				schema.PoetryTool: {Returncode: 0, ExecutionTime: 12.0},
			},
		}, time.Now())
		require.NoError(t, err)

		tool := s.GetTool("get_benchmark_scores")
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_benchmark_scores",
				Arguments: map[string]any{"renormalize": true},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var scores []schema.ToolScore
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &scores))
		require.Len(t, scores, 2)
		assert.Equal(t, schema.UvTool, scores[0].Tool)
	})

	t.Run("get_latest_report missing", func(t *testing.T) {
		tool := s.GetTool("get_latest_report")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_latest_report",
				Arguments: map[string]any{"results_dir": t.TempDir()},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no report found")
	})

	t.Run("get_latest_report returns content", func(t *testing.T) {
		reportDir := t.TempDir()
		reportPath := filepath.Join(reportDir, report.LatestReportFile)
		require.NoError(t, os.WriteFile(reportPath, []byte("# Benchmark Results\n"), 0o644))

		tool := s.GetTool("get_latest_report")
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_latest_report",
				Arguments: map[string]any{"results_dir": reportDir},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "# Benchmark Results")
	})

	t.Run("get_history_status without store", func(t *testing.T) {
		tool := s.GetTool("get_history_status")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_history_status",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not initialized")
	})
}
