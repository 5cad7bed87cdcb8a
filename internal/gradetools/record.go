package gradetools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/store"
)

// GradeAndRecordTool handles the grade_and_record MCP tool: grade a
// contract and persist the run for history and trend tracking.
type GradeAndRecordTool struct {
	grader *grading.Grader
	runs   *store.Store
}

// NewGradeAndRecordTool creates a GradeAndRecordTool.
func NewGradeAndRecordTool(g *grading.Grader, s *store.Store) *GradeAndRecordTool {
	return &GradeAndRecordTool{grader: g, runs: s}
}

// Definition returns the MCP tool definition for registration.
func (t *GradeAndRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("grade_and_record",
		mcp.WithDescription(
			"Grade an OpenAPI contract and persist the run. Returns everything "+
				"grade_contract returns plus the recorded runId and the apiId the run "+
				"is filed under for get_api_history.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path or http(s) URL of the OpenAPI document (YAML or JSON)."),
		),
		mcp.WithString("templatePath",
			mcp.Description("Optional path to a scoring template YAML overriding the built-in category budget."),
		),
		mcp.WithString("domain",
			mcp.Description("Business domain selecting the weight table. Defaults to general."),
		),
	)
}

// Handle processes the grade_and_record tool call.
func (t *GradeAndRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := strings.TrimSpace(req.GetString("path", ""))
	if source == "" {
		return mcp.NewToolResultError("'path' is required — the OpenAPI document to grade"), nil
	}

	opts, err := gradeOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	spec, err := loadSpecSource(ctx, source, opts.Progress)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading specification: %v", err)), nil
	}

	res, err := t.grader.Grade(ctx, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("grading %s: %w", source, err)
	}

	// The grade is complete before anything touches the store — a
	// cancelled or failed run never persists partial results.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	runID := uuid.NewString()
	rec := store.RunRecord{
		RunID:           runID,
		APIID:           res.APIID,
		GradedAt:        res.Metadata.GradedAt.UTC().Format(time.RFC3339),
		TotalScore:      res.Grade.Total,
		LetterGrade:     res.Grade.Letter,
		CompliancePct:   res.Grade.CompliancePct,
		AutoFail:        res.Grade.AutoFailTriggered,
		CriticalIssues:  res.Grade.CriticalIssues,
		FindingsCount:   len(res.Findings),
		TemplateVersion: res.Metadata.TemplateVersion,
	}
	if err := t.runs.InsertRun(rec, res.Findings); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("persisting run: %v", err)), nil
	}

	return jsonResult(struct {
		gradeResponse
		RunID string `json:"runId"`
		APIID string `json:"apiId"`
	}{
		gradeResponse: newGradeResponse(res),
		RunID:         runID,
		APIID:         res.APIID,
	})
}
