// Package report renders benchmark results into Markdown documents and PNG charts.
package report

import (
	"sort"
	"time"

	"github.com/huangsam/pmbench/schema"
)

// KeepSnapshots is how many report snapshot directories survive a prune.
const KeepSnapshots = 5

// File names within a snapshot directory.
const (
	ReportFile     = "report.md"
	SpeedChartFile = "installation_speed.png"
	ReproChartFile = "reproducibility.png"
	DXChartFile    = "dx_success_rate.png"
)

// LatestReportFile is the mutable pointer to the newest Markdown report,
// written next to the results directory root.
const LatestReportFile = "latest_report.md"

const snapshotPrefix = "benchmark_report_"

// Data bundles everything the renderer needs for one report.
// Any of the three metric reports may be nil; the corresponding
// sections render without data.
type Data struct {
	GeneratedAt  time.Time
	Installation *schema.InstallationReport
	Repro        schema.ReproReport
	DX           schema.DXReport
	Scores       []schema.ToolScore
}

// speedSeries returns tools and their installation times sorted ascending by time.
func speedSeries(installation *schema.InstallationReport) ([]schema.Tool, []float64) {
	if installation == nil || len(installation.Results) == 0 {
		return nil, nil
	}

	tools := make([]schema.Tool, 0, len(installation.Results))
	for tool := range installation.Results {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)
	sort.SliceStable(tools, func(i, j int) bool {
		return installation.Results[tools[i]].ExecutionTime < installation.Results[tools[j]].ExecutionTime
	})

	times := make([]float64, len(tools))
	for i, tool := range tools {
		times[i] = installation.Results[tool].ExecutionTime
	}
	return tools, times
}

// reproSeries returns tools in canonical order with 1 for reproducible, 0 otherwise.
func reproSeries(repro schema.ReproReport) ([]schema.Tool, []int) {
	if len(repro) == 0 {
		return nil, nil
	}

	tools := make([]schema.Tool, 0, len(repro))
	for tool := range repro {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)

	values := make([]int, len(tools))
	for i, tool := range tools {
		if repro[tool].Reproducible {
			values[i] = 1
		}
	}
	return tools, values
}

// dxSeries returns tools in canonical order with their scenario success rates
// in percent. Tools without scenario results are skipped.
func dxSeries(dx schema.DXReport) ([]schema.Tool, []float64) {
	if len(dx) == 0 {
		return nil, nil
	}

	tools := make([]schema.Tool, 0, len(dx))
	for tool := range dx {
		if len(dx[tool].Scenarios) > 0 {
			tools = append(tools, tool)
		}
	}
	schema.SortToolsCanonical(tools)

	rates := make([]float64, len(tools))
	for i, tool := range tools {
		scenarios := dx[tool].Scenarios
		successCount := 0
		for _, s := range scenarios {
			if s.Success {
				successCount++
			}
		}
		rates[i] = float64(successCount) / float64(len(scenarios)) * 100
	}
	return tools, rates
}
