package rules

import (
	"strings"
	"testing"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
)

// mustParse parses an inline YAML document or fails the test.
func mustParse(t *testing.T, content string) *Spec {
	t.Helper()
	n, err := openapi.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return n
}

// --- NamespaceRule ---

func TestNamespaceRule_PathsOutsideNamespace(t *testing.T) {
	spec := mustParse(t, `
paths:
  /users:
    get: {}
  /products:
    get: {}
`)
	rep := (&NamespaceRule{}).Check(spec)

	if got := rep.Contribution.Add; got != 6 {
		t.Errorf("score = %v, want 6", got)
	}
	if got := len(rep.Findings); got != 2 {
		t.Fatalf("len(findings) = %d, want 2", got)
	}
	for _, f := range rep.Findings {
		if f.RuleID != "NAM-NS" {
			t.Errorf("finding rule id = %q, want NAM-NS", f.RuleID)
		}
		if f.Severity != SeverityError {
			t.Errorf("finding severity = %q, want error", f.Severity)
		}
	}
	want := []string{"Missing /api/v2 namespace on one or more paths"}
	if len(rep.AutoFailReasons) != 1 || rep.AutoFailReasons[0] != want[0] {
		t.Errorf("AutoFailReasons = %v, want %v", rep.AutoFailReasons, want)
	}
}

func TestNamespaceRule_AllPathsCompliant(t *testing.T) {
	spec := mustParse(t, `
paths:
  /api/v2/users:
    get: {}
  /api/v2/products:
    post: {}
`)
	rep := (&NamespaceRule{}).Check(spec)

	if got := rep.Contribution.Add; got != 10 {
		t.Errorf("score = %v, want 10", got)
	}
	if len(rep.Findings) != 0 {
		t.Errorf("findings = %v, want none", rep.Findings)
	}
	if len(rep.AutoFailReasons) != 0 {
		t.Errorf("AutoFailReasons = %v, want none", rep.AutoFailReasons)
	}
}

func TestNamespaceRule_MixedPaths(t *testing.T) {
	spec := mustParse(t, `
paths:
  /api/v2/users:
    get: {}
  /legacy/orders:
    get: {}
`)
	rep := (&NamespaceRule{}).Check(spec)

	if got := len(rep.Findings); got != 1 {
		t.Fatalf("len(findings) = %d, want 1", got)
	}
	if !strings.Contains(rep.Findings[0].Message, "/legacy/orders") {
		t.Errorf("finding message = %q, want it to name the offending path", rep.Findings[0].Message)
	}
	if len(rep.AutoFailReasons) != 1 {
		t.Errorf("AutoFailReasons = %v, want exactly one", rep.AutoFailReasons)
	}
}

func TestNamespaceRule_NoPathsBaseline(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing paths key", `openapi: 3.0.3`},
		{"empty paths", "paths: {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := (&NamespaceRule{}).Check(mustParse(t, tt.doc))
			if got := rep.Contribution.Add; got != 10 {
				t.Errorf("score = %v, want full baseline 10", got)
			}
			if len(rep.AutoFailReasons) != 0 {
				t.Errorf("AutoFailReasons = %v, want none", rep.AutoFailReasons)
			}
		})
	}
}

func TestNamespaceRule_Meta(t *testing.T) {
	m := (&NamespaceRule{}).Meta()
	if !m.AutoFail {
		t.Error("namespace rule must be auto-fail")
	}
	if m.Category != "naming" || m.MaxPoints != 10 {
		t.Errorf("meta = %+v, want naming/10", m)
	}
}
