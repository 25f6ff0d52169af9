package report

import (
	"fmt"
	"strings"

	"github.com/huangsam/pmbench/schema"
)

// RenderMarkdown produces the full Markdown report document. The output is
// deterministic given the same Data, apart from the embedded timestamp and
// system-info strings.
func RenderMarkdown(data *Data) string {
	var b strings.Builder

	b.WriteString("# Python Dependency Management Benchmark Results\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	writeDataSources(&b, data)
	writeSystemInfo(&b, data)
	writeExecutiveSummary(&b)
	writeInstallationSpeed(&b, data)
	writeReproducibility(&b, data)
	writeDeveloperExperience(&b, data)
	writeDetailedDX(&b, data)
	writeOverallRanking(&b, data)
	writeToolCharacteristics(&b)
	writeConclusion(&b, data)
	writeRecommendations(&b, data)

	return b.String()
}

func writeDataSources(b *strings.Builder, data *Data) {
	availability := func(present bool) string {
		if present {
			return "available"
		}
		return "not available"
	}

	b.WriteString("**Data Sources:**\n")
	fmt.Fprintf(b, "- Installation speed: %s\n", availability(data.Installation != nil))
	fmt.Fprintf(b, "- Reproducibility: %s\n", availability(len(data.Repro) > 0))
	fmt.Fprintf(b, "- Developer experience: %s\n\n", availability(len(data.DX) > 0))
}

func writeSystemInfo(b *strings.Builder, data *Data) {
	if data.Installation == nil {
		return
	}

	info := data.Installation.SystemInfo
	b.WriteString("**System Information:**\n")
	fmt.Fprintf(b, "- OS: %s %s (%s)\n", info.Platform, info.PlatformRelease, info.Architecture)
	fmt.Fprintf(b, "- Go: %s (%d CPUs)\n\n", info.GoVersion, info.CPUs)
}

func writeExecutiveSummary(b *strings.Builder) {
	b.WriteString(`## Executive Summary

This report compares the performance of four Python dependency management tools:
- **uv**: A fast Python package installer and resolver
- **poetry**: A dependency management and packaging tool
- **pip-tools**: A tool to generate and synchronize pip requirements files
- **make**: Traditional approach using Makefile and requirements.txt

The evaluation covers three key aspects:
1. **Installation Speed**: Time taken to install dependencies
2. **Reproducibility**: Consistency of environments across multiple runs
3. **Developer Experience**: Success rate in common development workflows

`)
}

func writeInstallationSpeed(b *strings.Builder, data *Data) {
	b.WriteString(`## Installation Speed

The chart below shows the time taken by each tool to install the same set of dependencies.

![Installation Speed Comparison](` + SpeedChartFile + `)

`)

	tools, times := speedSeries(data.Installation)
	if len(tools) == 0 {
		return
	}

	b.WriteString("| Tool | Installation Time |\n")
	b.WriteString("|------|------------------|\n")
	for i, tool := range tools {
		fmt.Fprintf(b, "| %s | %.2fs |\n", tool, times[i])
	}

	fmt.Fprintf(b, "\n**Fastest Tool**: %s (%.2fs)\n", tools[0], times[0])
	fmt.Fprintf(b, "**Slowest Tool**: %s (%.2fs)\n", tools[len(tools)-1], times[len(times)-1])
	if times[0] > 0 {
		fmt.Fprintf(b, "**Speed Difference**: %.1fx\n", times[len(times)-1]/times[0])
	}
}

func writeReproducibility(b *strings.Builder, data *Data) {
	b.WriteString(`
## Reproducibility

This section evaluates whether each tool produces consistent environments across multiple runs.

![Environment Reproducibility](` + ReproChartFile + `)

`)

	tools, values := reproSeries(data.Repro)
	if len(tools) == 0 {
		return
	}

	b.WriteString("| Tool | Reproducible |\n")
	b.WriteString("|------|-------------|\n")
	for i, tool := range tools {
		verdict := "No"
		if values[i] == 1 {
			verdict = "Yes"
		}
		fmt.Fprintf(b, "| %s | %s |\n", tool, verdict)
	}

	var reproducible, nonReproducible []string
	for i, tool := range tools {
		if values[i] == 1 {
			reproducible = append(reproducible, string(tool))
		} else {
			nonReproducible = append(nonReproducible, string(tool))
		}
	}

	if len(reproducible) > 0 {
		fmt.Fprintf(b, "\n**Reproducible Tools**: %s\n", strings.Join(reproducible, ", "))
	}
	if len(nonReproducible) > 0 {
		fmt.Fprintf(b, "**Non-Reproducible Tools**: %s\n", strings.Join(nonReproducible, ", "))
	}
}

func writeDeveloperExperience(b *strings.Builder, data *Data) {
	b.WriteString(`
## Developer Experience

This section evaluates how well each tool handles common developer workflows.

![Developer Experience - Scenario Success Rate](` + DXChartFile + `)

`)

	tools, rates := dxSeries(data.DX)
	if len(tools) == 0 {
		return
	}

	b.WriteString("| Tool | Success Rate |\n")
	b.WriteString("|------|-------------|\n")
	for i, tool := range tools {
		fmt.Fprintf(b, "| %s | %.1f%% |\n", tool, rates[i])
	}

	bestIdx, worstIdx := 0, 0
	for i, rate := range rates {
		if rate > rates[bestIdx] {
			bestIdx = i
		}
		if rate < rates[worstIdx] {
			worstIdx = i
		}
	}

	fmt.Fprintf(b, "\n**Best DX Tool**: %s (%.1f%%)\n", tools[bestIdx], rates[bestIdx])
	fmt.Fprintf(b, "**Worst DX Tool**: %s (%.1f%%)\n", tools[worstIdx], rates[worstIdx])
}

func writeDetailedDX(b *strings.Builder, data *Data) {
	b.WriteString(`
### Detailed Developer Experience Results

The table below shows the success/failure of each tool in specific development scenarios.

`)

	if len(data.DX) == 0 {
		return
	}

	tools := make([]schema.Tool, 0, len(data.DX))
	for tool := range data.DX {
		tools = append(tools, tool)
	}
	schema.SortToolsCanonical(tools)

	b.WriteString("| Tool | Scenario | Description | Success |\n")
	b.WriteString("|------|----------|-------------|--------|\n")
	for _, tool := range tools {
		for i, scenario := range data.DX[tool].Scenarios {
			toolCell := ""
			if i == 0 {
				toolCell = string(tool)
			}
			successIcon := "❌"
			if scenario.Success {
				successIcon = "✅"
			}
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", toolCell, scenario.Name, scenario.Description, successIcon)
		}
	}
}

func writeOverallRanking(b *strings.Builder, data *Data) {
	b.WriteString(`
## Overall Ranking

Unified scores weight installation speed and reproducibility at 40% each and
developer experience at 20%.

`)

	if len(data.Scores) == 0 {
		return
	}

	b.WriteString("| Rank | Tool | Unified Score | Speed | Reproducibility | DX |\n")
	b.WriteString("|------|------|---------------|-------|-----------------|----|\n")
	for i, score := range data.Scores {
		fmt.Fprintf(b, "| %d | %s | %.1f | %.1f | %.1f | %.1f |\n",
			i+1, score.Tool, score.UnifiedScore, score.SpeedScore, score.ReproScore, score.DXScore)
	}
}

// toolTraits holds the fixed qualitative rows of the characteristics table.
var toolTraits = map[schema.Tool]struct{ strengths, weaknesses string }{
	schema.UvTool:       {"Very fast installs, built-in resolver, drop-in pip interface", "Younger ecosystem, fewer workflow features"},
	schema.PoetryTool:   {"Full project workflow, lock files, rich CLI", "Slower installs, heavier runtime"},
	schema.PiptoolsTool: {"Composes with plain pip, simple mental model", "Manual virtualenv management, multi-step workflow"},
	schema.MakeTool:     {"Works everywhere, zero new tooling", "No lock file semantics, weakest reproducibility story"},
}

func writeToolCharacteristics(b *strings.Builder) {
	b.WriteString(`
## Tool Characteristics

| Tool | Strengths | Weaknesses |
|------|-----------|------------|
`)
	for _, tool := range []schema.Tool{schema.UvTool, schema.PoetryTool, schema.PiptoolsTool, schema.MakeTool} {
		traits := toolTraits[tool]
		fmt.Fprintf(b, "| %s | %s | %s |\n", tool.DisplayName(), traits.strengths, traits.weaknesses)
	}
}

func writeConclusion(b *strings.Builder, data *Data) {
	b.WriteString(`
## Conclusion

Based on the benchmark results, here's a summary of the strengths and weaknesses of each tool:

`)

	speedTools, speedTimes := speedSeries(data.Installation)
	reproTools, reproValues := reproSeries(data.Repro)
	dxTools, dxRates := dxSeries(data.DX)
	if len(speedTools) == 0 || len(reproTools) == 0 || len(dxTools) == 0 {
		return
	}

	// DX rank positions, best rate first
	dxOrder := make([]int, len(dxRates))
	for i := range dxOrder {
		dxOrder[i] = i
	}
	for i := 0; i < len(dxOrder); i++ {
		for j := i + 1; j < len(dxOrder); j++ {
			if dxRates[dxOrder[j]] > dxRates[dxOrder[i]] {
				dxOrder[i], dxOrder[j] = dxOrder[j], dxOrder[i]
			}
		}
	}
	dxRank := make(map[schema.Tool]int)
	for rank, idx := range dxOrder {
		dxRank[dxTools[idx]] = rank + 1
	}

	seen := make(map[schema.Tool]struct{})
	var tools []schema.Tool
	for _, group := range [][]schema.Tool{speedTools, reproTools, dxTools} {
		for _, tool := range group {
			if _, ok := seen[tool]; !ok {
				seen[tool] = struct{}{}
				tools = append(tools, tool)
			}
		}
	}
	schema.SortToolsCanonical(tools)

	for _, tool := range tools {
		fmt.Fprintf(b, "### %s\n\n", tool.DisplayName())

		for i, st := range speedTools {
			if st == tool {
				fmt.Fprintf(b, "- **Installation Speed**: %d/%d (%.2fs)\n", i+1, len(speedTools), speedTimes[i])
				break
			}
		}

		for i, rt := range reproTools {
			if rt == tool {
				verdict := "❌ No"
				if reproValues[i] == 1 {
					verdict = "✅ Yes"
				}
				fmt.Fprintf(b, "- **Reproducibility**: %s\n", verdict)
				break
			}
		}

		for i, dt := range dxTools {
			if dt == tool {
				fmt.Fprintf(b, "- **Developer Experience**: %d/%d (%.1f%%)\n", dxRank[tool], len(dxTools), dxRates[i])
				break
			}
		}

		b.WriteString("\n")
	}
}

func writeRecommendations(b *strings.Builder, data *Data) {
	b.WriteString(`
## Recommendations

Based on the benchmark results, here are some recommendations for different use cases:

`)

	if len(data.Scores) > 0 {
		fmt.Fprintf(b, "**Overall Winner**: %s holds the top unified score in this run.\n\n", data.Scores[0].Tool.DisplayName())
	}

	b.WriteString(`1. **For speed-critical environments** (CI/CD pipelines, container builds):
   - Choose the fastest tool that meets your reproducibility requirements

2. **For development teams**:
   - Prioritize tools with better developer experience and clear error messages

3. **For production deployments**:
   - Prioritize tools with perfect reproducibility

4. **For balanced approaches**:
   - Consider the tool with the best overall ranking across all categories
`)
}
