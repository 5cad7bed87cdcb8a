package gradetools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
)

// ExplainFindingTool handles the explain_finding MCP tool: rule
// documentation for a finding's rule id.
type ExplainFindingTool struct {
	grader *grading.Grader
}

// NewExplainFindingTool creates an ExplainFindingTool.
func NewExplainFindingTool(g *grading.Grader) *ExplainFindingTool {
	return &ExplainFindingTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *ExplainFindingTool) Definition() mcp.Tool {
	return mcp.NewTool("explain_finding",
		mcp.WithDescription(
			"Explain a finding: the rule's requirement, severity, point weight, "+
				"whether it is an auto-fail gate, and how to fix it.",
		),
		mcp.WithString("ruleId",
			mcp.Required(),
			mcp.Description("The rule id from a finding, e.g. NAM-NS or PAG-OFFSET."),
		),
	)
}

// Handle processes the explain_finding tool call.
func (t *ExplainFindingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ruleID := strings.TrimSpace(req.GetString("ruleId", ""))
	if ruleID == "" {
		return mcp.NewToolResultError("'ruleId' is required — e.g. NAM-NS"), nil
	}

	rule, ok := t.grader.Registry().ByID(ruleID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown rule id %q — use list_checkpoints for the catalog", ruleID)), nil
	}

	m := rule.Meta()
	return jsonResult(map[string]any{
		"ruleId":      m.ID,
		"category":    m.Category,
		"severity":    m.Severity,
		"weight":      m.MaxPoints,
		"autoFail":    m.AutoFail,
		"requirement": m.Requirement,
		"fixHint":     m.FixHint,
	})
}

// SuggestFixesTool handles the suggest_fixes MCP tool: grade a
// contract and return a fix hint for every finding.
type SuggestFixesTool struct {
	grader *grading.Grader
}

// NewSuggestFixesTool creates a SuggestFixesTool.
func NewSuggestFixesTool(g *grading.Grader) *SuggestFixesTool {
	return &SuggestFixesTool{grader: g}
}

// Definition returns the MCP tool definition for registration.
func (t *SuggestFixesTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_fixes",
		mcp.WithDescription(
			"Grade an OpenAPI contract and return an actionable fix suggestion for "+
				"every finding, ordered by severity.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path or http(s) URL of the OpenAPI document (YAML or JSON)."),
		),
		mcp.WithString("domain",
			mcp.Description("Business domain selecting the weight table. Defaults to general."),
		),
	)
}

// Handle processes the suggest_fixes tool call.
func (t *SuggestFixesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := strings.TrimSpace(req.GetString("path", ""))
	if source == "" {
		return mcp.NewToolResultError("'path' is required — the OpenAPI document to analyze"), nil
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

	type suggestion struct {
		RuleID   string `json:"ruleId"`
		Severity string `json:"severity"`
		JSONPath string `json:"jsonPath"`
		Problem  string `json:"problem"`
		Fix      string `json:"fix"`
	}

	severityRank := map[string]int{"error": 0, "warn": 1, "info": 2}
	var suggestions []suggestion
	for _, f := range res.Findings {
		fix := ""
		if rule, ok := t.grader.Registry().ByID(f.RuleID); ok {
			fix = rule.Meta().FixHint
		}
		suggestions = append(suggestions, suggestion{
			RuleID:   f.RuleID,
			Severity: string(f.Severity),
			JSONPath: f.JSONPath,
			Problem:  f.Message,
			Fix:      fix,
		})
	}
	// Stable sort: severity first, registry order preserved within.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return severityRank[suggestions[i].Severity] < severityRank[suggestions[j].Severity]
	})

	return jsonResult(map[string]any{
		"total":       res.Grade.Total,
		"letter":      res.Grade.Letter,
		"suggestions": suggestions,
	})
}
