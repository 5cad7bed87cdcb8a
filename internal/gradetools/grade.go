package gradetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
)

// gradeResponse is the JSON document the grading tools return.
type gradeResponse struct {
	Grade       any `json:"grade"`
	Findings    any `json:"findings"`
	Checkpoints any `json:"checkpoints"`
	Metadata    any `json:"metadata"`
}

func newGradeResponse(res *grading.Result) gradeResponse {
	return gradeResponse{
		Grade:       res.Grade,
		Findings:    res.Findings,
		Checkpoints: res.Checkpoints,
		Metadata:    res.Metadata,
	}
}

// GradeContractTool handles the grade_contract MCP tool: grade an
// OpenAPI document from a file path or URL.
type GradeContractTool struct {
	grader *grading.Grader
}

// NewGradeContractTool creates a GradeContractTool.
func NewGradeContractTool(g *grading.Grader) *GradeContractTool {
	return &GradeContractTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *GradeContractTool) Definition() mcp.Tool {
	return mcp.NewTool("grade_contract",
		mcp.WithDescription(
			"Grade an OpenAPI contract against the active ruleset. Returns the weighted "+
				"score, letter grade, auto-fail verdict, per-category breakdown, findings, "+
				"checkpoints, and reproducibility metadata. Nothing is persisted — use "+
				"grade_and_record for that.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path or http(s) URL of the OpenAPI document (YAML or JSON)."),
		),
		mcp.WithString("templatePath",
			mcp.Description("Optional path to a scoring template YAML overriding the built-in category budget."),
		),
		mcp.WithString("domain",
			mcp.Description("Business domain selecting the weight table (general, finance, healthcare, ecommerce). Defaults to general."),
		),
	)
}

// Handle processes the grade_contract tool call.
func (t *GradeContractTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	return jsonResult(newGradeResponse(res))
}

// GradeInlineTool handles the grade_inline MCP tool: grade OpenAPI
// content passed directly in the request.
type GradeInlineTool struct {
	grader *grading.Grader
}

// NewGradeInlineTool creates a GradeInlineTool.
func NewGradeInlineTool(g *grading.Grader) *GradeInlineTool {
	return &GradeInlineTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *GradeInlineTool) Definition() mcp.Tool {
	return mcp.NewTool("grade_inline",
		mcp.WithDescription(
			"Grade OpenAPI content supplied inline (YAML or JSON). Same output as "+
				"grade_contract; useful when the document isn't on disk.",
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The OpenAPI document content, YAML or JSON."),
		),
		mcp.WithString("templatePath",
			mcp.Description("Optional path to a scoring template YAML overriding the built-in category budget."),
		),
		mcp.WithString("domain",
			mcp.Description("Business domain selecting the weight table. Defaults to general."),
		),
	)
}

// Handle processes the grade_inline tool call.
func (t *GradeInlineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("content", "")
	if strings.TrimSpace(content) == "" {
		return mcp.NewToolResultError("'content' is required — the OpenAPI document to grade"), nil
	}

	opts, err := gradeOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	spec, err := openapi.Parse([]byte(content))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing specification: %v", err)), nil
	}

	res, err := t.grader.Grade(ctx, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("grading inline content: %w", err)
	}
	return jsonResult(newGradeResponse(res))
}
