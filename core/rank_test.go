package core

import (
	"testing"

	"github.com/huangsam/pmbench/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankToolScores(t *testing.T) {
	scores := []schema.ToolScore{
		{Tool: schema.MakeTool, UnifiedScore: 20},
		{Tool: schema.PoetryTool, UnifiedScore: 80},
		{Tool: schema.UvTool, UnifiedScore: 95},
	}

	ranked := RankToolScores(scores)
	assert.Equal(t, schema.UvTool, ranked[0].Tool)
	assert.Equal(t, schema.PoetryTool, ranked[1].Tool)
	assert.Equal(t, schema.MakeTool, ranked[2].Tool)

	// Input order untouched.
	assert.Equal(t, schema.MakeTool, scores[0].Tool)
}

func TestRankToolScoresTiesKeepCanonicalOrder(t *testing.T) {
	scores := []schema.ToolScore{
		{Tool: schema.MakeTool, UnifiedScore: 50},
		{Tool: schema.PoetryTool, UnifiedScore: 50},
		{Tool: schema.PiptoolsTool, UnifiedScore: 50},
		{Tool: schema.UvTool, UnifiedScore: 50},
	}

	ranked := RankToolScores(scores)
	tools := make([]schema.Tool, len(ranked))
	for i, s := range ranked {
		tools[i] = s.Tool
	}
	assert.Equal(t, schema.AllTools, tools)
}
