package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs the ranked scores, dispatching based on the output format configured.
func WriteScoreResults(scores []schema.ToolScore, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScoreJSONResults(scores, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScoreCSVResults(scores, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(scores, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeScoreJSONResults handles opening the file and calling the JSON writer.
func writeScoreJSONResults(scores []schema.ToolScore, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForScores(w, scores)
	}, "Wrote JSON")
}

// writeScoreCSVResults handles opening the file and calling the CSV writer.
func writeScoreCSVResults(scores []schema.ToolScore, cfg *contract.Config) error {
	header := []string{"rank", "tool", "unified_score", "speed_score", "repro_score", "dx_score", "label"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForScores(csvWriter, scores)
		})
	}, "Wrote CSV")
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(scores []schema.ToolScore, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// Narrow terminals get the compact ranking without per-metric columns
	compact := getTableWidth(cfg) < compactWidthThreshold

	// 1. Define Headers
	headers := []string{"Rank", "Tool", "Unified"}
	if !compact {
		headers = append(headers, "Speed", "Repro", "DX")
	}
	headers = append(headers, "Label")
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	var data [][]string
	for i, score := range scores {
		row := []string{
			strconv.Itoa(i + 1),      // Rank
			score.Tool.DisplayName(), // Tool
			fmt.Sprintf("%.1f", score.UnifiedScore), // Unified
		}
		if !compact {
			row = append(
				row,
				fmt.Sprintf("%.1f", score.SpeedScore), // Speed
				fmt.Sprintf("%.1f", score.ReproScore), // Repro
				fmt.Sprintf("%.1f", score.DXScore),    // DX
			)
		}
		row = append(row, label(score.UnifiedScore)) // Label
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scored %d tools in %v. History backend: %s\n", len(scores), duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScores writes the ranked scores in CSV format.
func writeCSVResultsForScores(w *csv.Writer, scores []schema.ToolScore) error {
	for i, score := range scores {
		rec := []string{
			strconv.Itoa(i + 1),                       // Rank
			string(score.Tool),                        // Tool
			fmt.Sprintf("%.2f", score.UnifiedScore),   // Unified Score
			fmt.Sprintf("%.2f", score.SpeedScore),     // Speed Score
			fmt.Sprintf("%.2f", score.ReproScore),     // Reproducibility Score
			fmt.Sprintf("%.2f", score.DXScore),        // DX Score
			contract.GetPlainLabel(score.UnifiedScore), // Label
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScores writes the ranked scores in JSON format.
func writeJSONResultsForScores(w io.Writer, scores []schema.ToolScore) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONToolScore struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ToolScore
	}

	output := make([]JSONToolScore, len(scores))
	for i, score := range scores {
		output[i] = JSONToolScore{
			Rank:      i + 1,
			Label:     contract.GetPlainLabel(score.UnifiedScore),
			ToolScore: score,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
