// Package grading orchestrates rule execution into graded results: it
// fans the rule catalog out over a parsed specification, weights the
// category contributions by business domain, clamps and totals the
// scores, evaluates the auto-fail gate, and stamps the result with its
// content identity.
package grading

import (
	"math"
	"sort"
	"time"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/rules"
)

// CategoryScore is one category's earned points against its budget.
// Earned never exceeds Max.
type CategoryScore struct {
	Category   string  `json:"category"`
	Earned     float64 `json:"earned"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// GradeResult is the outcome of one grading invocation. Created once,
// never mutated.
type GradeResult struct {
	Total             int                      `json:"total"`
	Letter            string                   `json:"letter"`
	CompliancePct     float64                  `json:"compliancePct"`
	AutoFailTriggered bool                     `json:"autoFailTriggered"`
	CriticalIssues    int                      `json:"criticalIssues"`
	PerCategory       map[string]CategoryScore `json:"perCategory"`
	AutoFailReasons   []string                 `json:"autoFailReasons"`
}

// Checkpoint is a named, externally enumerable scoring unit — one per
// rule — with the points it earned in a particular run.
type Checkpoint struct {
	CheckpointID string  `json:"checkpointId"`
	Category     string  `json:"category"`
	MaxPoints    float64 `json:"maxPoints"`
	ScoredPoints float64 `json:"scoredPoints"`
}

// Metadata pins a graded result to the exact inputs that produced it,
// for reproducibility and cache-key formation. GradedAt and the
// instance fields are the only wall-clock data on a result and never
// influence the score.
type Metadata struct {
	SpecHash          string            `json:"specHash"`
	TemplateHash      string            `json:"templateHash"`
	RulesetHash       string            `json:"rulesetHash"`
	TemplateVersion   string            `json:"templateVersion"`
	ToolVersions      map[string]string `json:"toolVersions"`
	ScoringEngine     string            `json:"scoringEngine"`
	InstanceID        string            `json:"instanceId"`
	InstanceStartTime time.Time         `json:"instanceStartTime"`
	GradedAt          time.Time         `json:"gradedAt"`
}

// letterThresholds maps minimum totals to letter grades, highest
// first. The scale is monotonic: a higher total never maps to a
// strictly worse letter.
var letterThresholds = []struct {
	min    int
	letter string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

// LetterFor maps a total in [0,100] to its letter grade.
func LetterFor(total int) string {
	for _, t := range letterThresholds {
		if total >= t.min {
			return t.letter
		}
	}
	return "F"
}

// aggregate turns per-rule reports into a GradeResult plus scored
// checkpoints. A pure function of its inputs: identical reports,
// weights, and template always yield an identical result.
func aggregate(reg *rules.Registry, resolver *Resolver, tmpl Template, domain string, reports map[string]rules.Report) (GradeResult, []Checkpoint, []rules.Finding) {
	perCategory := make(map[string]CategoryScore)
	for cat, max := range tmpl.Categories {
		perCategory[cat] = CategoryScore{Category: cat, Max: max}
	}

	var checkpoints []Checkpoint
	var findings []rules.Finding

	for _, rule := range reg.All() {
		m := rule.Meta()
		rep, ok := reports[m.ID]
		if !ok {
			continue
		}
		findings = append(findings, rep.Findings...)

		weighted := rep.Contribution.Add * resolver.Weight(m.ID, domain)
		if weighted > m.MaxPoints {
			weighted = m.MaxPoints
		}
		checkpoints = append(checkpoints, Checkpoint{
			CheckpointID: m.ID,
			Category:     m.Category,
			MaxPoints:    m.MaxPoints,
			ScoredPoints: round2(weighted),
		})

		cs, known := perCategory[rep.Contribution.Category]
		if !known {
			// Rule category outside the template — no budget, no points.
			continue
		}
		cs.Earned += weighted
		perCategory[rep.Contribution.Category] = cs
	}

	total := 0.0
	for cat, cs := range perCategory {
		if cs.Earned > cs.Max {
			cs.Earned = cs.Max
		}
		if cs.Earned < 0 {
			cs.Earned = 0
		}
		cs.Earned = round2(cs.Earned)
		if cs.Max > 0 {
			cs.Percentage = round2(cs.Earned / cs.Max)
		}
		perCategory[cat] = cs
		total += cs.Earned
	}

	totalInt := int(math.Round(total))
	if totalInt > 100 {
		totalInt = 100
	}
	if totalInt < 0 {
		totalInt = 0
	}

	result := GradeResult{
		Total:         totalInt,
		Letter:        LetterFor(totalInt),
		CompliancePct: float64(totalInt) / 100,
		PerCategory:   perCategory,
	}

	// Critical issues: error findings from rules tagged auto-fail.
	for _, f := range findings {
		if f.Severity != rules.SeverityError {
			continue
		}
		if rule, known := reg.ByID(f.RuleID); known && rule.Meta().AutoFail {
			result.CriticalIssues++
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].RuleID != findings[j].RuleID {
			return findings[i].RuleID < findings[j].RuleID
		}
		return findings[i].JSONPath < findings[j].JSONPath
	})

	return result, checkpoints, findings
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
