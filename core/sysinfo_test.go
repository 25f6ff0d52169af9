package core

import (
	"context"
	"runtime"
	"testing"

	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/assert"
)

func TestCaptureSystemInfo(t *testing.T) {
	runner := &fakeRunner{responses: map[string]schema.CommandResult{
		"uname -r": {Returncode: 0, Stdout: "6.18.44\n"},
		"uname -v": {Returncode: 0, Stdout: "#1 SMP\n"},
	}}

	info := CaptureSystemInfo(context.Background(), runner)
	assert.Equal(t, runtime.GOOS, info.Platform)
	assert.Equal(t, runtime.GOARCH, info.Architecture)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.NumCPU(), info.CPUs)
	assert.Equal(t, "6.18.44", info.PlatformRelease)
	assert.Equal(t, "#1 SMP", info.PlatformVersion)
}

func TestCaptureSystemInfoProbeFailure(t *testing.T) {
	runner := &fakeRunner{responses: map[string]schema.CommandResult{
		"uname -r": {Returncode: 127, Stderr: "uname: not found"},
		"uname -v": {Returncode: 127, Stderr: "uname: not found"},
	}}

	info := CaptureSystemInfo(context.Background(), runner)
	assert.Empty(t, info.PlatformRelease)
	assert.Empty(t, info.PlatformVersion)
	assert.NotZero(t, info.CPUs)
}
