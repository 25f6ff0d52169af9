package core

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// unameTimeout bounds the cheap system probes so a wedged shell cannot
// stall a benchmark run.
const unameTimeout = 5 * time.Second

// CaptureSystemInfo gathers the machine context recorded alongside every
// installation artifact. Kernel details come from uname and are left
// empty when the probe fails.
func CaptureSystemInfo(ctx context.Context, runner contract.CommandRunner) schema.SystemInfo {
	info := schema.SystemInfo{
		Platform:     runtime.GOOS,
		Architecture: runtime.GOARCH,
		Processor:    runtime.GOARCH,
		GoVersion:    runtime.Version(),
		CPUs:         runtime.NumCPU(),
	}

	if result := runner.Run(ctx, "uname -r", "", unameTimeout); result.Returncode == 0 {
		info.PlatformRelease = strings.TrimSpace(result.Stdout)
	}
	if result := runner.Run(ctx, "uname -v", "", unameTimeout); result.Returncode == 0 {
		info.PlatformVersion = strings.TrimSpace(result.Stdout)
	}

	return info
}
