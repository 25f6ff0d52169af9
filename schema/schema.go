// Package schema has configs, models and global variables for all parts of pmbench.
package schema

// SystemInfo captures the machine that produced a benchmark artifact.
type SystemInfo struct {
	Platform        string `json:"platform"`
	PlatformRelease string `json:"platform_release"`
	PlatformVersion string `json:"platform_version"`
	Architecture    string `json:"architecture"`
	Processor       string `json:"processor"`
	GoVersion       string `json:"go_version"`
	CPUs            int    `json:"cpus"`
}

// CommandResult is the outcome of a single shell command.
// A timed-out or unspawnable command carries Returncode -1 with the
// failure reason in Stderr; it is never surfaced as a Go error.
type CommandResult struct {
	Command       string  `json:"command"`
	Returncode    int     `json:"returncode"`
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	ExecutionTime float64 `json:"execution_time"` // seconds
}

// InstallationReport is the persisted artifact of a speed benchmark run.
type InstallationReport struct {
	SystemInfo SystemInfo             `json:"system_info"`
	Results    map[Tool]CommandResult `json:"results"`
}

// ReproRun is the outcome of one reproducibility iteration.
type ReproRun struct {
	Returncode int     `json:"returncode"`
	Error      *string `json:"error,omitempty"`
}

// ReproResult holds the reproducibility verdict for a single tool.
// Hashes has one entry per iteration; nil marks an iteration where no
// environment hash could be determined.
type ReproResult struct {
	Tool         Tool       `json:"tool"`
	Reproducible bool       `json:"reproducible"`
	Hashes       []*string  `json:"hashes"`
	Runs         []ReproRun `json:"results"`
}

// ReproReport is the persisted artifact of a reproducibility run.
type ReproReport map[Tool]ReproResult

// ScenarioResult is the outcome of one developer-experience scenario.
type ScenarioResult struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Command     string  `json:"command"`
	Success     bool    `json:"success"`
	Returncode  int     `json:"returncode"`
	Error       *string `json:"error"`
	Output      string  `json:"output"`
}

// DXResult holds all scenario outcomes for a single tool. SetupError is
// set when environment preparation failed and no scenarios were run.
type DXResult struct {
	Tool       Tool             `json:"tool"`
	SetupError *string          `json:"setup_error,omitempty"`
	Scenarios  []ScenarioResult `json:"scenarios"`
}

// DXReport is the persisted artifact of a developer-experience run.
type DXReport map[Tool]DXResult

// ToolScore holds the per-metric and unified scores for a tool.
// All scores are on a 0-100 scale.
type ToolScore struct {
	Tool         Tool    `json:"tool"`
	SpeedScore   float64 `json:"speed_score"`
	ReproScore   float64 `json:"repro_score"`
	DXScore      float64 `json:"dx_score"`
	UnifiedScore float64 `json:"unified_score"`
}
