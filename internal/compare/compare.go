// Package compare diffs two graded results for trend and regression
// detection.
//
// Percent change uses the baseline category's maximum as the
// denominator (the baseline's target). The source behavior was
// ambiguous between the baseline's max and its earned points; max is
// chosen because an empty-earned baseline would otherwise divide by
// zero, and "points of the available budget" reads consistently across
// categories.
package compare

import (
	"fmt"
	"math"
	"sort"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/grading"
)

// CategoryDelta is the per-category difference between a baseline and
// a candidate result. Antisymmetric: swapping the inputs negates
// Delta and PercentChange for every shared category.
type CategoryDelta struct {
	Category        string  `json:"category"`
	BaselineEarned  float64 `json:"baselineEarned"`
	CandidateEarned float64 `json:"candidateEarned"`
	Delta           float64 `json:"delta"`
	PercentChange   float64 `json:"percentChange"`
}

// Comparison is the full diff of two graded results.
type Comparison struct {
	TotalDelta int             `json:"totalDelta"`
	Categories []CategoryDelta `json:"categories"`
	Insights   []string        `json:"insights"`
}

// Results diffs a baseline against a candidate GradeResult. Every
// category present in either result appears once, in sorted order.
func Results(baseline, candidate grading.GradeResult) Comparison {
	names := make(map[string]bool)
	for c := range baseline.PerCategory {
		names[c] = true
	}
	for c := range candidate.PerCategory {
		names[c] = true
	}
	sorted := make([]string, 0, len(names))
	for c := range names {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	cmp := Comparison{TotalDelta: candidate.Total - baseline.Total}
	for _, name := range sorted {
		base := baseline.PerCategory[name]
		cand := candidate.PerCategory[name]

		d := CategoryDelta{
			Category:        name,
			BaselineEarned:  base.Earned,
			CandidateEarned: cand.Earned,
			Delta:           round2(cand.Earned - base.Earned),
		}
		target := base.Max
		if target == 0 {
			target = cand.Max
		}
		if target > 0 {
			d.PercentChange = round2(d.Delta / target * 100)
		}
		cmp.Categories = append(cmp.Categories, d)
	}

	cmp.Insights = insights(cmp)
	return cmp
}

// insights renders free-text observations from the computed deltas.
func insights(cmp Comparison) []string {
	var out []string
	switch {
	case cmp.TotalDelta > 0:
		out = append(out, fmt.Sprintf("Overall score improved by %d points", cmp.TotalDelta))
	case cmp.TotalDelta < 0:
		out = append(out, fmt.Sprintf("Overall score regressed by %d points", -cmp.TotalDelta))
	default:
		out = append(out, "Overall score is unchanged")
	}

	for _, d := range cmp.Categories {
		switch {
		case d.Delta > 0:
			out = append(out, fmt.Sprintf("Category %s improved by %.1f points (%.1f%%)", d.Category, d.Delta, d.PercentChange))
		case d.Delta < 0:
			out = append(out, fmt.Sprintf("Category %s regressed by %.1f points (%.1f%%)", d.Category, -d.Delta, -d.PercentChange))
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
