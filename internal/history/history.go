// Package history derives trends from persisted grading runs. It only
// reads — every write goes through the store's run insert path.
package history

import (
	"fmt"
	"time"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/store"
)

// Direction classifies how an API's score is moving over its retrieved
// run window.
type Direction string

const (
	Improving Direction = "improving"
	Degrading Direction = "degrading"
	Stable    Direction = "stable"
)

// slopeBand is the least-squares slope (points per run) inside which a
// series counts as stable.
const slopeBand = 0.5

// Source is the read surface the tracker needs from the store.
type Source interface {
	History(apiID string, limit int, since time.Time) ([]store.RunRecord, error)
	ViolationCounts(apiID string, runLimit int) ([]store.ViolationCount, error)
}

// Report is the derived view over an API's run history.
type Report struct {
	APIID         string                 `json:"apiId"`
	Rows          []store.RunRecord      `json:"rows"`
	Trend         Direction              `json:"trend"`
	Slope         float64                `json:"slope"`
	TopViolations []store.ViolationCount `json:"topViolations"`
}

// maxTopViolations caps the recurring-violation list.
const maxTopViolations = 10

// Build retrieves prior runs for an API identity and derives the trend
// direction plus the top recurring violations.
func Build(src Source, apiID string, limit int, since time.Time) (*Report, error) {
	rows, err := src.History(apiID, limit, since)
	if err != nil {
		return nil, fmt.Errorf("history: retrieving runs for %s: %w", apiID, err)
	}

	violations, err := src.ViolationCounts(apiID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: violation counts for %s: %w", apiID, err)
	}
	if len(violations) > maxTopViolations {
		violations = violations[:maxTopViolations]
	}

	slope := scoreSlope(rows)
	return &Report{
		APIID:         apiID,
		Rows:          rows,
		Trend:         classify(slope, len(rows)),
		Slope:         slope,
		TopViolations: violations,
	}, nil
}

// scoreSlope fits a least-squares line through the totals ordered
// oldest to newest and returns its slope in points per run. Rows
// arrive most-recent-first from the store.
func scoreSlope(rows []store.RunRecord) float64 {
	n := len(rows)
	if n < 2 {
		return 0
	}

	// x = 0 for the oldest run, n-1 for the newest.
	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := float64(rows[n-1-i].TotalScore)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

func classify(slope float64, runs int) Direction {
	if runs < 2 {
		return Stable
	}
	switch {
	case slope > slopeBand:
		return Improving
	case slope < -slopeBand:
		return Degrading
	default:
		return Stable
	}
}
