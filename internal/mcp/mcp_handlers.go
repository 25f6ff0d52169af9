package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/pmbench/core"
	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleGetBenchmarkScores(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resultsDir := request.GetString("results_dir", h.baseCfg.ResultsDir)
	renormalize := request.GetBool("renormalize", h.baseCfg.RenormalizeWeights)

	store := artifact.NewStore(resultsDir)
	install, err := store.LoadInstallation()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load installation artifact: %v", err)), nil
	}
	repro, err := store.LoadRepro()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load reproducibility artifact: %v", err)), nil
	}
	dx, err := store.LoadDX()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dx artifact: %v", err)), nil
	}
	if install == nil && repro == nil && dx == nil {
		return mcp.NewToolResultError("no benchmark artifacts found; run 'pmbench suite' first"), nil
	}

	ranked := core.RankToolScores(core.BuildToolScores(install, repro, dx, renormalize))

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLatestReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resultsDir := request.GetString("results_dir", h.baseCfg.ResultsDir)

	reportPath := filepath.Join(resultsDir, report.LatestReportFile)
	content, err := os.ReadFile(reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultError("no report found; run 'pmbench report' first"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read report: %v", err)), nil
	}

	return mcp.NewToolResultText(string(content)), nil
}

func (h *toolHandler) handleGetHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("run history tracking is not initialized"), nil
	}
	runStore := h.mgr.GetRunStore()
	if runStore == nil {
		return mcp.NewToolResultError("run history tracking is not initialized"), nil
	}

	status, err := runStore.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get history status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
