package rules

import (
	"fmt"
	"strings"
)

// apiNamespace is the mandatory path prefix every operation must live
// under. Violating it is an auto-fail, not just a deduction.
const apiNamespace = "/api/v2/"

// missingNamespaceReason is the canonical auto-fail text for namespace
// violations. Kept as a single constant so dedup across findings is
// trivial and the wording is stable across runs.
const missingNamespaceReason = "Missing /api/v2 namespace on one or more paths"

// NamespaceRule enforces the /api/v2 path namespace convention.
//
// Baseline: a spec without a paths object scores full marks — there is
// nothing outside the namespace. Specs with any path outside /api/v2
// score 6/10 and trigger auto-fail.
type NamespaceRule struct{}

func (*NamespaceRule) Meta() Meta {
	return Meta{
		ID:          "NAM-NS",
		Category:    "naming",
		MaxPoints:   10,
		Severity:    SeverityError,
		AutoFail:    true,
		Requirement: "Every path must live under the /api/v2/ namespace.",
		FixHint:     "Move the offending paths under /api/v2/, e.g. /users becomes /api/v2/users.",
	}
}

func (r *NamespaceRule) Check(spec *Spec) Report {
	m := r.Meta()

	paths := spec.Paths()
	if len(paths) == 0 {
		return report(m, m.MaxPoints, nil)
	}

	var findings []Finding
	for _, p := range paths {
		if strings.HasPrefix(p, apiNamespace) {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			JSONPath: pathRef("paths", p),
			Message:  fmt.Sprintf("Path %s is outside the /api/v2 namespace", p),
		})
	}

	if len(findings) == 0 {
		return report(m, m.MaxPoints, nil)
	}
	return report(m, 6, findings, missingNamespaceReason)
}
