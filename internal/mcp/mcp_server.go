// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the pmbench MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Package Manager Benchmark Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_benchmark_scores ---
	s.AddTool(mcp.NewTool("get_benchmark_scores",
		mcp.WithDescription("Aggregate the newest benchmark artifacts into ranked unified tool scores."),
		mcp.WithString("results_dir", mcp.Description("Path to the results directory (defaults to the configured one).")),
		mcp.WithBoolean("renormalize", mcp.Description("Renormalize weights over present metrics instead of penalizing missing ones.")),
	), h.handleGetBenchmarkScores)

	// --- 2. Tool: get_latest_report ---
	s.AddTool(mcp.NewTool("get_latest_report",
		mcp.WithDescription("Return the contents of the most recently rendered Markdown report."),
		mcp.WithString("results_dir", mcp.Description("Path to the results directory.")),
	), h.handleGetLatestReport)

	// --- 3. Tool: get_history_status ---
	s.AddTool(mcp.NewTool("get_history_status",
		mcp.WithDescription("Return status information about the run history database."),
	), h.handleGetHistoryStatus)

	return s
}

// StartMCPServer starts the pmbench MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
