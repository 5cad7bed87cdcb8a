package rules

import (
	"fmt"
	"strings"
)

// AsyncOperationRule checks long-running operation conventions: any
// operation that returns 202 Accepted must also document where the
// caller polls for completion (a Location response header).
//
// Baseline: no 202 responses anywhere scores full marks.
type AsyncOperationRule struct{}

func (*AsyncOperationRule) Meta() Meta {
	return Meta{
		ID:          "ASYNC-202",
		Category:    "async",
		MaxPoints:   10,
		Severity:    SeverityWarn,
		Requirement: "Operations returning 202 Accepted must document a Location header pointing at the status resource.",
		FixHint:     "Declare a Location header on the 202 response referencing the operation-status endpoint.",
	}
}

func (r *AsyncOperationRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		accepted := op.Path("responses", "202")
		if accepted.IsAbsent() {
			return
		}
		total++
		headers := accepted.Get("headers")
		for _, h := range headers.Keys() {
			if strings.EqualFold(h, "Location") {
				ok++
				return
			}
		}
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			JSONPath: pathRef("paths", path) + "." + method + ".responses.202",
			Message:  fmt.Sprintf("%s %s returns 202 without a Location header for status polling", strings.ToUpper(method), path),
		})
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
