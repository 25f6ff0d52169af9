package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/pmbench/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total benchmark runs: %d\n", status.TotalRuns)
	fmt.Printf("Total score records: %d\n", status.TableSizes[toolScoresTable])

	// Retrieve all benchmark runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve benchmark runs: %w", err)
	}

	// Retrieve all tool scores
	toolScores, err := store.GetAllToolScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve tool scores: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetToolScores := parquet.ConvertToolScoreRecords(toolScores)

	// Write benchmark runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write benchmark runs: %w", err)
	}
	fmt.Printf("Exported %d benchmark runs to: %s\n", len(parquetRuns), runsFile)

	// Write tool scores to Parquet
	toolScoresFile := outputFile + ".tool_scores.parquet"
	if err := parquet.WriteToolScoresParquet(parquetToolScores, toolScoresFile); err != nil {
		return fmt.Errorf("failed to write tool scores: %w", err)
	}
	fmt.Printf("Exported %d tool score records to: %s\n", len(parquetToolScores), toolScoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
