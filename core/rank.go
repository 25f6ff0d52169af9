package core

import (
	"sort"

	"github.com/huangsam/pmbench/schema"
)

// RankToolScores sorts tool scores by unified score in descending order.
// The sort is stable over the canonical ordering that BuildToolScores
// produces, so ties rank deterministically.
func RankToolScores(scores []schema.ToolScore) []schema.ToolScore {
	ranked := make([]schema.ToolScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UnifiedScore > ranked[j].UnifiedScore
	})
	return ranked
}
