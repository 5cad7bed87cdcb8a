package gradetools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
)

// ListCheckpointsTool handles the list_checkpoints MCP tool — the
// enumerable scoring units of the active ruleset.
type ListCheckpointsTool struct {
	grader *grading.Grader
}

// NewListCheckpointsTool creates a ListCheckpointsTool.
func NewListCheckpointsTool(g *grading.Grader) *ListCheckpointsTool {
	return &ListCheckpointsTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *ListCheckpointsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_checkpoints",
		mcp.WithDescription(
			"List every scoring checkpoint in the active ruleset: id, category, "+
				"point weight, and the requirement it enforces.",
		),
	)
}

// Handle processes the list_checkpoints tool call.
func (t *ListCheckpointsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type entry struct {
		ID          string  `json:"id"`
		Category    string  `json:"category"`
		Weight      float64 `json:"weight"`
		Description string  `json:"description"`
	}

	var out []entry
	for _, rule := range t.grader.Registry().All() {
		m := rule.Meta()
		out = append(out, entry{
			ID:          m.ID,
			Category:    m.Category,
			Weight:      m.MaxPoints,
			Description: m.Requirement,
		})
	}
	return jsonResult(out)
}
