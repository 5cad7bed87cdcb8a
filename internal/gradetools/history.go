package gradetools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/history"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/store"
)

// GetHistoryTool handles the get_api_history MCP tool: prior runs for
// an API identity plus the derived trend.
type GetHistoryTool struct {
	runs *store.Store
}

// NewGetHistoryTool creates a GetHistoryTool.
func NewGetHistoryTool(s *store.Store) *GetHistoryTool {
	return &GetHistoryTool{runs: s}
}

// Definition returns the MCP tool definition for registration.
func (t *GetHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_api_history",
		mcp.WithDescription(
			"Retrieve prior grading runs for an API identity, most recent first, "+
				"with the derived trend (improving/degrading/stable) and the top "+
				"recurring violations across the window.",
		),
		mcp.WithString("apiId",
			mcp.Required(),
			mcp.Description("The API identity runs are filed under (returned by grade_and_record)."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum runs to return. Defaults to 20."),
		),
		mcp.WithString("since",
			mcp.Description("Optional RFC3339 timestamp — only runs graded at or after it."),
		),
	)
}

// Handle processes the get_api_history tool call.
func (t *GetHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apiID := strings.TrimSpace(req.GetString("apiId", ""))
	if apiID == "" {
		return mcp.NewToolResultError("'apiId' is required — the identity runs are filed under"), nil
	}
	limit := intArg(req, "limit", 20)

	var since time.Time
	if raw := strings.TrimSpace(req.GetString("since", "")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'since' must be RFC3339: %v", err)), nil
		}
		since = parsed
	}

	report, err := history.Build(t.runs, apiID, limit, since)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("retrieving history: %v", err)), nil
	}
	return jsonResult(report)
}
