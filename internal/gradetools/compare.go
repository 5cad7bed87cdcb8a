package gradetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/compare"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
)

// CompareVersionsTool handles the compare_api_versions MCP tool: grade
// two versions of a contract and diff the results.
type CompareVersionsTool struct {
	grader *grading.Grader
}

// NewCompareVersionsTool creates a CompareVersionsTool.
func NewCompareVersionsTool(g *grading.Grader) *CompareVersionsTool {
	return &CompareVersionsTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *CompareVersionsTool) Definition() mcp.Tool {
	return mcp.NewTool("compare_api_versions",
		mcp.WithDescription(
			"Grade two versions of an OpenAPI contract and compare them: per-category "+
				"deltas, percent change against the category budget, and plain-text "+
				"insights about improvements and regressions.",
		),
		mcp.WithString("baselineContent",
			mcp.Required(),
			mcp.Description("The baseline (older) OpenAPI document, YAML or JSON."),
		),
		mcp.WithString("candidateContent",
			mcp.Required(),
			mcp.Description("The candidate (newer) OpenAPI document, YAML or JSON."),
		),
		mcp.WithString("domain",
			mcp.Description("Business domain selecting the weight table. Defaults to general."),
		),
	)
}

// Handle processes the compare_api_versions tool call.
func (t *CompareVersionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baselineContent := req.GetString("baselineContent", "")
	candidateContent := req.GetString("candidateContent", "")
	if strings.TrimSpace(baselineContent) == "" || strings.TrimSpace(candidateContent) == "" {
		return mcp.NewToolResultError("'baselineContent' and 'candidateContent' are both required"), nil
	}

	opts, err := gradeOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	baseline, err := openapi.Parse([]byte(baselineContent))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing baseline: %v", err)), nil
	}
	candidate, err := openapi.Parse([]byte(candidateContent))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing candidate: %v", err)), nil
	}

	baseRes, err := t.grader.Grade(ctx, baseline, opts)
	if err != nil {
		return nil, fmt.Errorf("grading baseline: %w", err)
	}
	candRes, err := t.grader.Grade(ctx, candidate, opts)
	if err != nil {
		return nil, fmt.Errorf("grading candidate: %w", err)
	}

	diff := compare.Results(baseRes.Grade, candRes.Grade)
	return jsonResult(map[string]any{
		"baseline":   baseRes.Grade,
		"candidate":  candRes.Grade,
		"comparison": diff,
	})
}
