package gradetools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
)

// VersionTool handles the version MCP tool: the server's identity and
// the active template/ruleset fingerprints, so callers can decide
// whether cached results are still valid.
type VersionTool struct {
	grader *grading.Grader
}

// NewVersionTool creates a VersionTool bound to the process grader.
func NewVersionTool(g *grading.Grader) *VersionTool {
	return &VersionTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *VersionTool) Definition() mcp.Tool {
	return mcp.NewTool("version",
		mcp.WithDescription(
			"Report the grading server's version, scoring engine, instance identity, "+
				"and the hashes of the active ruleset and scoring template. Use this to "+
				"detect whether previously cached grades are still comparable.",
		),
	)
}

// Handle processes the version tool call.
func (t *VersionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tmpl := grading.DefaultTemplate()
	return jsonResult(map[string]any{
		"serverVersion":     t.grader.Version(),
		"scoringEngine":     grading.ScoringEngine,
		"instanceId":        t.grader.InstanceID(),
		"instanceStartTime": t.grader.InstanceStart().Format(time.RFC3339),
		"rulesetHash":       t.grader.RulesetHash(),
		"templateVersion":   tmpl.Version,
		"templateHash":      tmpl.Hash(),
	})
}
