// Package rules defines the rule contract and the registry of built-in
// API contract checks.
//
// Every check implements the same contract: consume a parsed
// specification, return findings plus a partial category score. Rules
// are pure functions of the immutable spec tree — no I/O, no shared
// state — which is what lets the grading pipeline fan them out
// concurrently. A rule must never panic or error on malformed or absent
// structure; absence is a valid input that yields the rule's documented
// baseline score.
package rules

import (
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
)

// Spec is the parsed specification tree rules traverse.
type Spec = openapi.Node

// Severity classifies a finding.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Finding is a single rule violation or observation, produced once per
// rule invocation and never mutated.
type Finding struct {
	RuleID   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	JSONPath string   `json:"jsonPath"`
	Message  string   `json:"message"`
	Category string   `json:"category"`
}

// Contribution is a rule's partial score for its category. Add never
// exceeds Max.
type Contribution struct {
	Category string  `json:"category"`
	Add      float64 `json:"add"`
	Max      float64 `json:"max"`
}

// Report is the full output of one rule invocation.
type Report struct {
	Findings        []Finding    `json:"findings"`
	Contribution    Contribution `json:"scoreContribution"`
	AutoFailReasons []string     `json:"autoFailReasons,omitempty"`
}

// Meta describes a rule for the checkpoint listing, explain_finding,
// and suggest_fixes surfaces. Static per rule.
type Meta struct {
	ID          string
	Category    string
	MaxPoints   float64
	Severity    Severity
	AutoFail    bool
	Requirement string
	FixHint     string
}

// Rule is the uniform contract every check implements.
type Rule interface {
	Meta() Meta
	Check(spec *Spec) Report
}

// report builds a Report with the rule's category attached to every
// finding and to the contribution.
func report(m Meta, add float64, findings []Finding, autoFail ...string) Report {
	if add < 0 {
		add = 0
	}
	if add > m.MaxPoints {
		add = m.MaxPoints
	}
	for i := range findings {
		findings[i].RuleID = m.ID
		findings[i].Category = m.Category
	}
	return Report{
		Findings:        findings,
		Contribution:    Contribution{Category: m.Category, Add: add, Max: m.MaxPoints},
		AutoFailReasons: autoFail,
	}
}
