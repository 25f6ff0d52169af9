package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns scripted results keyed by command, defaulting to a
// clean zero exit.
type fakeRunner struct {
	responses map[string]schema.CommandResult
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, command string, _ string, _ time.Duration) schema.CommandResult {
	f.calls = append(f.calls, command)
	if res, ok := f.responses[command]; ok {
		res.Command = command
		return res
	}
	return schema.CommandResult{Command: command, Returncode: 0}
}

var _ contract.CommandRunner = &fakeRunner{} // Compile-time check

// makeProject lays out a minimal Python project with install scripts for
// the given tools.
func makeProject(t *testing.T, tools ...schema.Tool) string {
	t.Helper()
	dir := t.TempDir()

	for name, content := range map[string]string{
		"pyproject.toml":  "[project]\nname = \"sample\"\n",
		"requirements.in": "requests\n",
		"Makefile":        "install:\n\tpip install -r requirements.txt\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	scriptsDir := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))
	for _, tool := range tools {
		script := filepath.Join(scriptsDir, "install_"+string(tool)+".sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	}

	return dir
}

// testConfig builds a validated config for core tests.
func testConfig(t *testing.T, tools ...schema.Tool) *contract.Config {
	t.Helper()
	return &contract.Config{
		ProjectDir:      makeProject(t, tools...),
		Tools:           tools,
		ResultsDir:      t.TempDir(),
		WorkDir:         t.TempDir(),
		InstallTimeout:  time.Duration(contract.DefaultInstallTimeoutSec) * time.Second,
		ScenarioTimeout: time.Duration(contract.DefaultScenarioTimeoutSec) * time.Second,
		ReproTimeout:    time.Duration(contract.DefaultReproTimeoutSec) * time.Second,
		Iterations:      3,
		Output:          schema.TextOut,
	}
}
