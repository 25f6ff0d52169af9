package core

import (
	"context"
	"testing"

	"github.com/huangsam/pmbench/internal/artifact"
	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSpeedBenchmark(t *testing.T) {
	cfg := testConfig(t, schema.UvTool, schema.PoetryTool)
	runner := &fakeRunner{responses: map[string]schema.CommandResult{
		"./scripts/install_uv.sh":     {Returncode: 0, Stdout: "ok", ExecutionTime: 1.5},
		"./scripts/install_poetry.sh": {Returncode: 0, Stdout: "ok", ExecutionTime: 12.0},
	}}

	require.NoError(t, ExecuteSpeedBenchmark(context.Background(), cfg, runner))

	store := artifact.NewStore(cfg.ResultsDir)
	report, err := store.LoadInstallation()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Results, 2)
	assert.InDelta(t, 1.5, report.Results[schema.UvTool].ExecutionTime, 1e-9)
}

func TestExecuteSpeedBenchmarkAbortsOnBrokenEnvironment(t *testing.T) {
	cfg := testConfig(t, schema.MakeTool, schema.UvTool)
	runner := &fakeRunner{responses: map[string]schema.CommandResult{
		"./scripts/install_make.sh": {Returncode: 127, Stderr: "sh: pip: command not found"},
	}}

	err := ExecuteSpeedBenchmark(context.Background(), cfg, runner)
	require.ErrorIs(t, err, ErrBenchAborted)

	// Remaining tools are skipped after the abort.
	for _, call := range runner.calls {
		assert.NotEqual(t, "./scripts/install_uv.sh", call)
	}

	// The partial artifact is still persisted.
	store := artifact.NewStore(cfg.ResultsDir)
	report, loadErr := store.LoadInstallation()
	require.NoError(t, loadErr)
	require.NotNil(t, report)
	assert.Contains(t, report.Results, schema.MakeTool)
	assert.NotContains(t, report.Results, schema.UvTool)
}

func TestExecuteSpeedBenchmarkMissingInstallScript(t *testing.T) {
	cfg := testConfig(t, schema.UvTool)
	cfg.Tools = []schema.Tool{schema.PoetryTool} // no install_poetry.sh in the project

	err := ExecuteSpeedBenchmark(context.Background(), cfg, &fakeRunner{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBenchAborted)
}

func TestExecuteSpeedBenchmarkTruncatesStdout(t *testing.T) {
	longOut := make([]byte, 2000)
	for i := range longOut {
		longOut[i] = 'x'
	}

	cfg := testConfig(t, schema.UvTool)
	runner := &fakeRunner{responses: map[string]schema.CommandResult{
		"./scripts/install_uv.sh": {Returncode: 0, Stdout: string(longOut), ExecutionTime: 1.0},
	}}

	require.NoError(t, ExecuteSpeedBenchmark(context.Background(), cfg, runner))

	store := artifact.NewStore(cfg.ResultsDir)
	report, err := store.LoadInstallation()
	require.NoError(t, err)
	assert.Len(t, report.Results[schema.UvTool].Stdout, 503)
}

func TestIsFatalStderr(t *testing.T) {
	tests := []struct {
		stderr string
		fatal  bool
	}{
		{"sh: uv: command not found", true},
		{"python3: No module named pip", true},
		{"bash: ./scripts/install_uv.sh: No such file or directory", true},
		{"ERROR: Could not find a version that satisfies the requirement", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.fatal, isFatalStderr(tt.stderr), "stderr %q", tt.stderr)
	}
}
