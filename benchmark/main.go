// Package main provides a performance benchmarking tool for the pmbench CLI itself.
// It measures stage execution times across different fixture projects,
// running each stage multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - pmbench binary installed and available in PATH
// - Fixture projects checked out to the specified base directory
// - Each fixture project carries scripts/install_<tool>.sh helpers
//
// Usage: go run benchmark/main.go [project-base-dir]
//
//	project-base-dir: Directory containing fixture projects
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Project  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ProjectBase  string
	Timeout      time.Duration
	Iterations   int
	Runs         int
	TestProjects []string
	ProjectTools map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [project-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	projectBase := os.Args[1]

	config := BenchmarkConfig{
		ProjectBase:  projectBase,
		Timeout:      15 * time.Minute,
		Iterations:   3,
		Runs:         4,
		TestProjects: []string{"flask-app", "data-pipeline", "ml-stack"},
		ProjectTools: map[string]string{
			"flask-app":     "uv,poetry",
			"data-pipeline": "make,piptools,uv",
			"ml-stack":      "uv,poetry,piptools",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear run history so timings are not skewed by prior state
	fmt.Printf("Clearing run history...\n")
	clearCmd := exec.Command("pmbench", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run history cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that pmbench binary and fixture projects exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if pmbench is available
	if _, err := exec.LookPath("pmbench"); err != nil {
		return fmt.Errorf("pmbench binary not found in PATH")
	}

	// Check if fixture projects exist
	for _, project := range config.TestProjects {
		projectPath := filepath.Join(config.ProjectBase, project)
		if _, err := os.Stat(projectPath); os.IsNotExist(err) {
			return fmt.Errorf("project %s not found at %s", project, projectPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark stages across configured projects
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d projects, %v timeout, %d iterations, %d runs per stage\n",
		len(config.TestProjects), config.Timeout, config.Iterations, config.Runs)

	for _, project := range config.TestProjects {
		fmt.Printf("Benchmarking %s\n", project)

		projectPath := filepath.Join(config.ProjectBase, project)
		tools := config.ProjectTools[project]

		for _, command := range []string{"bench", "repro", "dx", "report"} {
			result := runBenchmarkSuite(config, project, projectPath, command, tools)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs one pmbench stage repeatedly against a project
func runBenchmarkSuite(config BenchmarkConfig, project, projectPath, command, tools string) BenchmarkResult {
	fmt.Printf("Running %s stage on %s (%d runs)\n", command, project, config.Runs)

	cold, times := runBenchmark(config, projectPath, command, tools)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}

	warmAvg := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Project:  project,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a pmbench stage multiple times and returns cold time and warm times.
// The first successful run is cold (empty package manager caches), the rest are warm.
func runBenchmark(config BenchmarkConfig, projectPath, command, tools string) (coldTime float64, warmTimes []float64) {
	args := []string{
		command,
		"--tools", tools,
		"--iterations", fmt.Sprintf("%d", config.Iterations),
		"--history-backend", "none",
		"--emoji", "no",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("pmbench", args...)
		cmd.Dir = projectPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if stage output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "bench":
		completionPhrase = "Installation Speed Summary:"
	case "repro":
		completionPhrase = "Testing reproducibility of"
	case "dx":
		completionPhrase = "Evaluating DX for"
	default:
		completionPhrase = "Scored"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/pmbench_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"project", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Project, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "bench", "Speed Stage:")
	printCommandSummary(results, "repro", "Reproducibility Stage:")
	printCommandSummary(results, "dx", "DX Stage:")
	printCommandSummary(results, "report", "Report Stage:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific stage
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-14s: Cold: %s, Warm: %s\n", result.Project, result.ColdTime, result.WarmTime)
		}
	}
}
