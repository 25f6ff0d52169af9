package outwriter

import (
	"os"

	"github.com/huangsam/pmbench/internal/contract"
	"golang.org/x/term"
)

// compactWidthThreshold is the terminal width below which the score table
// drops its per-metric columns.
const compactWidthThreshold = 80

// getTableWidth returns the effective terminal width for table output.
func getTableWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return compactWidthThreshold
	}
	return detectedWidth
}
