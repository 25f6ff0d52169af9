package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/huangsam/pmbench/schema"
)

// LocalShellRunner implements the CommandRunner interface by executing
// commands through the local POSIX shell.
type LocalShellRunner struct{}

var _ CommandRunner = &LocalShellRunner{} // Compile-time check

// NewLocalShellRunner creates a new instance of the local shell runner.
func NewLocalShellRunner() *LocalShellRunner {
	return &LocalShellRunner{}
}

// Run executes a command via 'sh -c' and folds every failure mode into
// the returned CommandResult.
func (r *LocalShellRunner) Run(ctx context.Context, command string, dir string, timeout time.Duration) schema.CommandResult {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	cmd.Dir = dir
	// Package managers fork resolver and download helpers; killing the
	// whole process group prevents orphans on timeout.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Seconds()

	result := schema.CommandResult{
		Command:       command,
		Stdout:        stdout.String(),
		Stderr:        stderr.String(),
		ExecutionTime: elapsed,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Returncode = -1
		result.Stderr = fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds()))
	case err != nil && cmd.ProcessState == nil:
		// Spawn failure, e.g. the shell is missing or dir is unusable.
		result.Returncode = -1
		result.Stderr = err.Error()
	default:
		result.Returncode = cmd.ProcessState.ExitCode()
	}

	return result
}
