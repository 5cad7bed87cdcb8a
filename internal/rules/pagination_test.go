package rules

import (
	"strings"
	"testing"
)

// --- OffsetPaginationRule ---

func TestOffsetPaginationRule_ForbiddenParams(t *testing.T) {
	spec := mustParse(t, `
paths:
  /api/v2/users:
    get:
      parameters:
        - name: offset
          in: query
        - name: limit
          in: query
  /api/v2/orders:
    get:
      parameters:
        - name: page
          in: query
`)
	rep := (&OffsetPaginationRule{}).Check(spec)

	if got := rep.Contribution.Add; got != 6 {
		t.Errorf("score = %v, want 6", got)
	}
	if got := len(rep.Findings); got != 2 {
		t.Fatalf("len(findings) = %d, want 2", got)
	}
	if got := len(rep.AutoFailReasons); got != 2 {
		t.Fatalf("len(AutoFailReasons) = %d, want 2", got)
	}
	for _, reason := range rep.AutoFailReasons {
		if !strings.Contains(reason, "Offset/page pagination") {
			t.Errorf("reason = %q, want it to describe offset/page pagination", reason)
		}
	}
}

func TestOffsetPaginationRule_CursorPaginationPasses(t *testing.T) {
	spec := mustParse(t, `
paths:
  /api/v2/users:
    get:
      parameters:
        - name: cursor
          in: query
        - name: limit
          in: query
`)
	rep := (&OffsetPaginationRule{}).Check(spec)

	if got := rep.Contribution.Add; got != 10 {
		t.Errorf("score = %v, want 10", got)
	}
	if len(rep.Findings) != 0 {
		t.Errorf("findings = %v, want none", rep.Findings)
	}
}

func TestOffsetPaginationRule_IgnoresNonListContexts(t *testing.T) {
	// offset is only forbidden as a query param on GET list endpoints:
	// item paths, non-GET methods, and non-query params don't count.
	spec := mustParse(t, `
paths:
  /api/v2/users/{id}:
    get:
      parameters:
        - name: offset
          in: query
  /api/v2/users:
    post:
      parameters:
        - name: page
          in: query
  /api/v2/orders:
    get:
      parameters:
        - name: offset
          in: header
`)
	rep := (&OffsetPaginationRule{}).Check(spec)

	if got := rep.Contribution.Add; got != 10 {
		t.Errorf("score = %v, want 10", got)
	}
	if len(rep.AutoFailReasons) != 0 {
		t.Errorf("AutoFailReasons = %v, want none", rep.AutoFailReasons)
	}
}

func TestOffsetPaginationRule_NoPathsBaseline(t *testing.T) {
	rep := (&OffsetPaginationRule{}).Check(mustParse(t, "openapi: 3.0.3"))
	if got := rep.Contribution.Add; got != 10 {
		t.Errorf("score = %v, want full baseline 10", got)
	}
}

// --- helpers ---

func TestIsCollectionPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/v2/users", true},
		{"/api/v2/users/{id}", false},
		{"/api/v2/users/{id}/orders", true},
	}

	for _, tt := range tests {
		if got := isCollectionPath(tt.path); got != tt.want {
			t.Errorf("isCollectionPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProportional(t *testing.T) {
	tests := []struct {
		max       float64
		ok, total int
		want      float64
	}{
		{10, 0, 0, 10}, // nothing to judge earns full marks
		{10, 5, 10, 5},
		{10, 10, 10, 10},
		{8, 0, 4, 0},
		{7, 3, 4, 5.25},
	}

	for _, tt := range tests {
		if got := proportional(tt.max, tt.ok, tt.total); got != tt.want {
			t.Errorf("proportional(%v, %d, %d) = %v, want %v", tt.max, tt.ok, tt.total, got, tt.want)
		}
	}
}
