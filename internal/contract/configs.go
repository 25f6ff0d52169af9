package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/pmbench/schema"
)

// Default values for configuration.
const (
	DefaultInstallTimeoutSec  = 300
	DefaultScenarioTimeoutSec = 120
	DefaultReproTimeoutSec    = 180
	DefaultIterations         = 3
	MaxIterations             = 10
	DefaultResultsDir         = "results"
)

// OutputTruncateLimit caps stored command output; anything longer is cut
// and suffixed with "...". Full output rarely matters past the first error.
const OutputTruncateLimit = 500

// TimestampLayout is the layout used in artifact and report snapshot names.
const TimestampLayout = "20060102_150405"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the benchmark stages.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectDir string
	Tools      []schema.Tool
	ResultsDir string
	WorkDir    string

	InstallTimeout  time.Duration
	ScenarioTimeout time.Duration
	ReproTimeout    time.Duration
	Iterations      int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	ReportTimestamp    string
	JSONOnly           bool
	Prune              bool
	RenormalizeWeights bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Tools            string `mapstructure:"tools"`
	ResultsDir       string `mapstructure:"results-dir"`
	WorkDir          string `mapstructure:"work-dir"`
	InstallTimeout   int    `mapstructure:"install-timeout"`
	ScenarioTimeout  int    `mapstructure:"scenario-timeout"`
	ReproTimeout     int    `mapstructure:"repro-timeout"`
	Iterations       int    `mapstructure:"iterations"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from reportCmd.Flags() ---
	Timestamp          string `mapstructure:"timestamp"`
	JSONOnly           bool   `mapstructure:"json-only"`
	Prune              bool   `mapstructure:"prune"`
	RenormalizeWeights bool   `mapstructure:"renormalize-weights"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeouts(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveProjectAndDirs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.JSONOnly = input.JSONOnly
	cfg.Prune = input.Prune
	cfg.RenormalizeWeights = input.RenormalizeWeights

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Tools Validation ---
	tools, err := schema.ParseToolList(input.Tools)
	if err != nil {
		return err
	}
	cfg.Tools = tools

	// --- 2. Iterations Validation ---
	if input.Iterations <= 0 || input.Iterations > MaxIterations {
		return fmt.Errorf("iterations must be greater than 0 and cannot exceed %d (received %d)", MaxIterations, input.Iterations)
	}
	cfg.Iterations = input.Iterations

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 4. Report Timestamp Validation ---
	if input.Timestamp != "" {
		if _, err := time.Parse(TimestampLayout, input.Timestamp); err != nil {
			return fmt.Errorf("invalid --timestamp value '%s'. expected layout %s", input.Timestamp, TimestampLayout)
		}
	}
	cfg.ReportTimestamp = input.Timestamp

	return nil
}

// processTimeouts converts the second-denominated timeout flags into durations.
func processTimeouts(cfg *Config, input *ConfigRawInput) error {
	for name, value := range map[string]int{
		"install-timeout":  input.InstallTimeout,
		"scenario-timeout": input.ScenarioTimeout,
		"repro-timeout":    input.ReproTimeout,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be greater than 0 seconds (received %d)", name, value)
		}
	}
	cfg.InstallTimeout = time.Duration(input.InstallTimeout) * time.Second
	cfg.ScenarioTimeout = time.Duration(input.ScenarioTimeout) * time.Second
	cfg.ReproTimeout = time.Duration(input.ReproTimeout) * time.Second
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveProjectAndDirs resolves the project, results and work directories.
func resolveProjectAndDirs(cfg *Config, input *ConfigRawInput) error {
	projectDir := input.ProjectDirStr
	if projectDir == "" {
		projectDir = "."
	}
	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absProject)
	if err != nil {
		return fmt.Errorf("project directory %q is not accessible: %w", absProject, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %q is not a directory", absProject)
	}
	cfg.ProjectDir = absProject

	resultsDir := input.ResultsDir
	if resultsDir == "" {
		resultsDir = DefaultResultsDir
	}
	absResults, err := filepath.Abs(resultsDir)
	if err != nil {
		return err
	}
	cfg.ResultsDir = absResults

	workDir := input.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	absWork, err := filepath.Abs(workDir)
	if err != nil {
		return err
	}
	cfg.WorkDir = absWork

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
