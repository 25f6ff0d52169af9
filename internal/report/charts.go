package report

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barPalette mirrors the four-tool color scheme used across the charts.
var barPalette = []drawing.Color{
	drawing.ColorFromHex("3498db"),
	drawing.ColorFromHex("2ecc71"),
	drawing.ColorFromHex("e74c3c"),
	drawing.ColorFromHex("f39c12"),
}

func barStyle(i int) chart.Style {
	color := barPalette[i%len(barPalette)]
	return chart.Style{
		FillColor:   color,
		StrokeColor: color,
		StrokeWidth: 0,
	}
}

// renderBarChart writes a PNG bar chart to path. The Y axis always starts
// at zero so bar heights are comparable across runs.
func renderBarChart(path, title, yAxisName string, bars []chart.Value, yMax float64, yTicks []chart.Tick) error {
	yAxis := chart.YAxis{
		Name: yAxisName,
		Range: &chart.ContinuousRange{
			Min: 0,
			Max: yMax,
		},
	}
	if len(yTicks) > 0 {
		yAxis.Ticks = yTicks
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   640,
		BarWidth: 90,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{},
		YAxis: yAxis,
		Bars:  bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return nil
}

// renderSpeedChart draws installation times sorted ascending with %.2fs labels.
func renderSpeedChart(data *Data, path string) error {
	tools, times := speedSeries(data.Installation)
	if len(tools) == 0 {
		return nil
	}

	yMax := 0.0
	bars := make([]chart.Value, len(tools))
	for i, tool := range tools {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.2fs)", tool, times[i]),
			Value: times[i],
			Style: barStyle(i),
		}
		if times[i] > yMax {
			yMax = times[i]
		}
	}
	if yMax == 0 {
		yMax = 1
	}

	return renderBarChart(path, "Installation Speed Comparison", "Time (seconds)", bars, yMax*1.1, nil)
}

// renderReproChart draws 0/1 bars with a No/Yes axis.
func renderReproChart(data *Data, path string) error {
	tools, values := reproSeries(data.Repro)
	if len(tools) == 0 {
		return nil
	}

	bars := make([]chart.Value, len(tools))
	for i, tool := range tools {
		bars[i] = chart.Value{
			Label: string(tool),
			Value: float64(values[i]),
			Style: barStyle(i),
		}
	}

	ticks := []chart.Tick{
		{Value: 0, Label: "No"},
		{Value: 1, Label: "Yes"},
	}

	return renderBarChart(path, "Environment Reproducibility", "Reproducible", bars, 1, ticks)
}

// renderDXChart draws scenario success rates on a fixed 0-100 percent axis.
func renderDXChart(data *Data, path string) error {
	tools, rates := dxSeries(data.DX)
	if len(tools) == 0 {
		return nil
	}

	bars := make([]chart.Value, len(tools))
	for i, tool := range tools {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", tool, rates[i]),
			Value: rates[i],
			Style: barStyle(i),
		}
	}

	return renderBarChart(path, "Developer Experience - Scenario Success Rate", "Success Rate (%)", bars, 100, nil)
}
