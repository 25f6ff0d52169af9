package core

import (
	"math"

	"github.com/huangsam/pmbench/schema"
)

// BuildToolScores computes per-tool scores from whichever artifacts are
// available. Tools come from the union of artifact keys, ordered
// canonically. A metric whose artifact is missing contributes 0 by
// default; with renormalize the unified score is re-weighted over the
// metrics that are actually present.
func BuildToolScores(install *schema.InstallationReport, repro schema.ReproReport, dx schema.DXReport, renormalize bool) []schema.ToolScore {
	tools := collectTools(install, repro, dx)
	speed := speedScores(install)

	scores := make([]schema.ToolScore, 0, len(tools))
	for _, tool := range tools {
		score := schema.ToolScore{Tool: tool}
		var unified, weightSum float64

		if install != nil {
			score.SpeedScore = speed[tool] // absent tools stay at 0
			unified += schema.SpeedWeight * score.SpeedScore
			weightSum += schema.SpeedWeight
		}
		if repro != nil {
			if result, ok := repro[tool]; ok && result.Reproducible {
				score.ReproScore = 100
			}
			unified += schema.ReproWeight * score.ReproScore
			weightSum += schema.ReproWeight
		}
		if dx != nil {
			score.DXScore = dxScore(dx[tool])
			unified += schema.DXWeight * score.DXScore
			weightSum += schema.DXWeight
		}

		if renormalize && weightSum > 0 {
			unified /= weightSum
		}
		score.UnifiedScore = unified
		scores = append(scores, score)
	}
	return scores
}

// collectTools gathers the union of tools across artifacts in canonical order.
func collectTools(install *schema.InstallationReport, repro schema.ReproReport, dx schema.DXReport) []schema.Tool {
	seen := make(map[schema.Tool]struct{})
	if install != nil {
		for tool := range install.Results {
			seen[tool] = struct{}{}
		}
	}
	for tool := range repro {
		seen[tool] = struct{}{}
	}
	for tool := range dx {
		seen[tool] = struct{}{}
	}

	tools := make([]schema.Tool, 0, len(seen))
	for tool := range seen {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)
	return tools
}

// speedScores normalizes installation times onto a 0-100 scale via
// min-max scaling: the fastest tool earns 100, the slowest 0. A single
// tool, or identical times, score 100 across the board.
func speedScores(install *schema.InstallationReport) map[schema.Tool]float64 {
	scores := make(map[schema.Tool]float64)
	if install == nil || len(install.Results) == 0 {
		return scores
	}

	minTime := math.Inf(1)
	maxTime := math.Inf(-1)
	for _, result := range install.Results {
		minTime = math.Min(minTime, result.ExecutionTime)
		maxTime = math.Max(maxTime, result.ExecutionTime)
	}

	for tool, result := range install.Results {
		if maxTime == minTime {
			scores[tool] = 100
			continue
		}
		scores[tool] = 100 * (1 - (result.ExecutionTime-minTime)/(maxTime-minTime))
	}
	return scores
}

// dxScore is the scenario success fraction on a 0-100 scale, rounded to
// one decimal. A tool with no completed scenarios scores 0.
func dxScore(result schema.DXResult) float64 {
	if len(result.Scenarios) == 0 {
		return 0
	}
	succeeded := 0
	for _, s := range result.Scenarios {
		if s.Success {
			succeeded++
		}
	}
	raw := 100 * float64(succeeded) / float64(len(result.Scenarios))
	return math.Round(raw*10) / 10
}
