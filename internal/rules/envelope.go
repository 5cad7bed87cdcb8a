package rules

import (
	"fmt"
)

// EnvelopeRule checks that list endpoints wrap their success payload in
// a response envelope: an object schema with a data property (and,
// ideally, pagination metadata alongside it).
//
// Baseline: no list operations scores full marks.
type EnvelopeRule struct{}

func (*EnvelopeRule) Meta() Meta {
	return Meta{
		ID:          "ENV-SHAPE",
		Category:    "envelope",
		MaxPoints:   10,
		Severity:    SeverityWarn,
		Requirement: "List endpoints must return an envelope object with a data property, never a bare array.",
		FixHint:     "Wrap the array in an object: {\"data\": [...], \"meta\": {...}}.",
	}
}

func (r *EnvelopeRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		if method != "get" || !isCollectionPath(path) {
			return
		}
		schema := op.Path("responses", "200", "content", "application/json", "schema")
		if schema.IsAbsent() {
			// Undocumented payload — nothing to judge against.
			return
		}
		total++
		if schema.Get("type").Str() == "object" && schema.Get("properties").Has("data") {
			ok++
			return
		}
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			JSONPath: pathRef("paths", path) + ".get.responses.200",
			Message:  fmt.Sprintf("GET %s returns a bare payload — wrap list responses in a data envelope", path),
		})
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
