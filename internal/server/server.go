// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the grader, the run store,
// and the tool handlers, and registers everything with the MCP server.
// No business logic lives here, only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/gradetools"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all grading tools
// registered. This is the single place where all dependencies are
// resolved.
//
// The returned cleanup function closes the run store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if store init failed.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	grader := grading.NewGrader(Version)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"apigrader",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register grading tools ---

	versionTool := gradetools.NewVersionTool(grader)
	s.AddTool(versionTool.Definition(), versionTool.Handle)

	checkpointsTool := gradetools.NewListCheckpointsTool(grader)
	s.AddTool(checkpointsTool.Definition(), checkpointsTool.Handle)

	gradeTool := gradetools.NewGradeContractTool(grader)
	s.AddTool(gradeTool.Definition(), gradeTool.Handle)

	inlineTool := gradetools.NewGradeInlineTool(grader)
	s.AddTool(inlineTool.Definition(), inlineTool.Handle)

	compareTool := gradetools.NewCompareVersionsTool(grader)
	s.AddTool(compareTool.Definition(), compareTool.Handle)

	explainTool := gradetools.NewExplainFindingTool(grader)
	s.AddTool(explainTool.Definition(), explainTool.Handle)

	fixesTool := gradetools.NewSuggestFixesTool(grader)
	s.AddTool(fixesTool.Definition(), fixesTool.Handle)

	// --- Register run-store tools ---
	//
	// The run store is an independent subsystem: if SQLite fails to
	// open, stateless grading continues working. We log a warning and
	// skip the record/history tool registration.

	cleanup := noop
	runs, storeErr := store.New(store.DefaultConfig())
	if storeErr != nil {
		log.Printf("WARNING: run store disabled: %v", storeErr)
	} else {
		cleanup = func() {
			if err := runs.Close(); err != nil {
				log.Printf("WARNING: run store close: %v", err)
			}
		}

		recordTool := gradetools.NewGradeAndRecordTool(grader, runs)
		s.AddTool(recordTool.Definition(), recordTool.Handle)

		historyTool := gradetools.NewGetHistoryTool(runs)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the run
// store hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the grader effectively.
func serverInstructions() string {
	return `You have access to the Smackdab API grader, an MCP server that
grades OpenAPI contracts against the platform ruleset.

## Tools

- version: server identity plus the active ruleset and template hashes.
  Identical hashes mean identical grading behavior, so cached results
  stay valid.
- list_checkpoints: every scoring unit with id, category, weight, and
  the requirement it enforces.
- grade_contract / grade_inline: grade a document from a path or URL,
  or from inline content. Returns the weighted total (0-100), letter
  grade, per-category scores, findings, checkpoints, and metadata.
  Nothing is persisted.
- grade_and_record: same as grade_contract, plus the run is stored and
  the response carries runId and apiId.
- get_api_history: prior runs for an apiId, most recent first, with a
  trend (improving/degrading/stable) and the top recurring violations.
- compare_api_versions: grade a baseline and a candidate document and
  diff them per category.
- explain_finding: the requirement and fix guidance behind a rule id.
- suggest_fixes: grade a document and return an actionable fix per
  finding, worst severity first.

## Reading results

- autoFailTriggered is a gate, not a score modifier: a contract can
  score in the A range and still fail because a mandatory requirement
  (the /api/v2 namespace, cursor pagination) is violated. When it is
  true, autoFailReasons says why.
- Findings have severities error > warn > info. criticalIssues counts
  error findings on auto-fail rules.
- The domain parameter (general, finance, healthcare, ecommerce)
  reweights rules for a business vertical; unknown domains fall back
  to neutral weights.

## Workflow

1. grade_contract first; inspect findings and autoFailReasons.
2. Use explain_finding or suggest_fixes for anything unclear.
3. After fixing, compare_api_versions against the original document to
   verify nothing regressed.
4. Use grade_and_record in CI-style flows so get_api_history can show
   the trend over time.`
}
