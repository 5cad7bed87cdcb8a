package rules

import (
	"fmt"
)

// forbiddenPageParams are the query parameter names that indicate
// offset/page pagination on a list endpoint.
var forbiddenPageParams = map[string]bool{
	"offset": true,
	"page":   true,
}

// OffsetPaginationRule forbids offset/page pagination on list
// endpoints. Cursor pagination (cursor + limit) is the required model;
// offset pagination breaks under concurrent writes and is an auto-fail.
//
// Baseline: no paths, or no GET list operations, scores full marks.
type OffsetPaginationRule struct{}

func (*OffsetPaginationRule) Meta() Meta {
	return Meta{
		ID:          "PAG-OFFSET",
		Category:    "pagination",
		MaxPoints:   10,
		Severity:    SeverityError,
		AutoFail:    true,
		Requirement: "List endpoints must use cursor pagination; offset and page query parameters are forbidden.",
		FixHint:     "Replace offset/page query parameters with cursor and limit.",
	}
}

func (r *OffsetPaginationRule) Check(spec *Spec) Report {
	m := r.Meta()

	var findings []Finding
	var reasons []string
	spec.Operations(func(path, method string, op *Spec) {
		if method != "get" || !isCollectionPath(path) {
			return
		}
		for _, name := range queryParams(op) {
			if !forbiddenPageParams[name] {
				continue
			}
			findings = append(findings, Finding{
				Severity: SeverityError,
				JSONPath: pathRef("paths", path) + ".get.parameters",
				Message:  fmt.Sprintf("Offset/page pagination parameter %q on GET %s — use cursor pagination", name, path),
			})
			reasons = append(reasons, fmt.Sprintf("Offset/page pagination on GET %s (parameter %q)", path, name))
		}
	})

	if len(findings) == 0 {
		return report(m, m.MaxPoints, nil)
	}
	return report(m, 6, findings, reasons...)
}
