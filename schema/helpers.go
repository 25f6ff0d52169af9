package schema

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayOverrides maps tools whose conventional spelling is not a plain
// title-cased word.
var displayOverrides = map[Tool]string{
	MakeTool:     "make",
	UvTool:       "uv",
	PiptoolsTool: "pip-tools",
}

// DisplayName returns the conventional human-facing spelling of a tool,
// e.g. "Poetry" or "pip-tools".
func (t Tool) DisplayName() string {
	if name, ok := displayOverrides[t]; ok {
		return name
	}
	return titleCaser.String(string(t))
}

// ParseToolList parses a comma-separated tool list into Tool values.
// Empty entries are dropped; an empty input yields the full canonical set.
func ParseToolList(s string) ([]Tool, error) {
	if strings.TrimSpace(s) == "" {
		tools := make([]Tool, len(AllTools))
		copy(tools, AllTools)
		return tools, nil
	}

	var tools []Tool
	seen := make(map[Tool]struct{})
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		tool := Tool(strings.ToLower(trimmed))
		if _, ok := ValidTools[tool]; !ok {
			return nil, &UnknownToolError{Name: trimmed}
		}
		if _, dup := seen[tool]; dup {
			continue
		}
		seen[tool] = struct{}{}
		tools = append(tools, tool)
	}
	return tools, nil
}

// UnknownToolError reports a tool name outside the supported set.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool '" + e.Name + "'. must be make, poetry, piptools, uv"
}

// SortToolsCanonical orders tools by their position in AllTools; tools
// outside the canonical set sort alphabetically after it.
func SortToolsCanonical(tools []Tool) {
	rank := make(map[Tool]int, len(AllTools))
	for i, t := range AllTools {
		rank[t] = i
	}
	sort.SliceStable(tools, func(i, j int) bool {
		ri, iKnown := rank[tools[i]]
		rj, jKnown := rank[tools[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return tools[i] < tools[j]
		}
	})
}
