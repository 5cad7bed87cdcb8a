// Package gradetools provides the MCP tool handlers for the grading
// pipeline.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (grader, store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Every tool takes and returns JSON. Failures that belong to the
// caller (bad input, store unavailable, upstream fetch errors) come
// back as tool-level error results, never as Go errors that would
// crash the host process.
package gradetools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
)

// jsonResult marshals a response document into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("gradetools: encoding response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are
// float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// loadSpecSource resolves the path-or-URL "path" argument into a
// parsed spec, reporting progress at the fetch boundary.
func loadSpecSource(ctx context.Context, source string, notify grading.Progress) (*openapi.Node, error) {
	if notify != nil {
		notify(grading.StageFetch, 0, "loading "+source)
	}
	return openapi.LoadSource(ctx, source)
}

// gradeOptions assembles grading options from the shared tool
// parameters: templatePath and domain.
func gradeOptions(req mcp.CallToolRequest) (grading.Options, error) {
	opts := grading.Options{
		Domain: strings.TrimSpace(req.GetString("domain", "general")),
	}

	if tp := strings.TrimSpace(req.GetString("templatePath", "")); tp != "" {
		tmpl, err := grading.LoadTemplate(tp)
		if err != nil {
			return grading.Options{}, err
		}
		opts.Template = &tmpl
	}
	return opts, nil
}
