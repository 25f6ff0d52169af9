// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/pmbench/internal/contract"
	"github.com/huangsam/pmbench/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints ranked tool scores using the configured output format.
func (ow *OutWriter) WriteScores(scores []schema.ToolScore, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(scores, cfg, duration)
}
