package rules

import (
	"fmt"
)

// CacheHeaderRule checks that GET operations document cache validators
// — an ETag or Cache-Control response header on the success response.
//
// Baseline: no GET operations scores full marks.
type CacheHeaderRule struct{}

func (*CacheHeaderRule) Meta() Meta {
	return Meta{
		ID:          "CACHE-HEADERS",
		Category:    "caching",
		MaxPoints:   10,
		Severity:    SeverityInfo,
		Requirement: "GET operations should document ETag or Cache-Control response headers on the success response.",
		FixHint:     "Declare an ETag or Cache-Control header under the 200 response's headers object.",
	}
}

func (r *CacheHeaderRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		if method != "get" {
			return
		}
		total++
		headers := op.Path("responses", "200", "headers")
		if headers.Has("ETag") || headers.Has("Cache-Control") ||
			headers.Has("etag") || headers.Has("cache-control") {
			ok++
			return
		}
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			JSONPath: pathRef("paths", path) + ".get.responses",
			Message:  fmt.Sprintf("GET %s documents no cache validator headers (ETag/Cache-Control)", path),
		})
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
