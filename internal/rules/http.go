package rules

import (
	"fmt"
	"strings"
)

// StatusCodeRule checks that every operation declares a success
// response and at least one client-error response.
//
// Baseline: no operations scores full marks. Otherwise points scale
// with the proportion of compliant operations.
type StatusCodeRule struct{}

func (*StatusCodeRule) Meta() Meta {
	return Meta{
		ID:          "HTTP-STATUS",
		Category:    "http",
		MaxPoints:   8,
		Severity:    SeverityWarn,
		Requirement: "Every operation must document a 2xx success response and at least one 4xx error response.",
		FixHint:     "Add the missing 2xx/4xx entries to the operation's responses object.",
	}
}

func (r *StatusCodeRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		total++
		responses := op.Get("responses")
		hasSuccess, hasClientError := false, false
		for _, code := range responses.Keys() {
			switch {
			case strings.HasPrefix(code, "2"):
				hasSuccess = true
			case strings.HasPrefix(code, "4"):
				hasClientError = true
			}
		}
		if hasSuccess && hasClientError {
			ok++
			return
		}
		var missing []string
		if !hasSuccess {
			missing = append(missing, "2xx")
		}
		if !hasClientError {
			missing = append(missing, "4xx")
		}
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			JSONPath: pathRef("paths", path) + "." + method + ".responses",
			Message:  fmt.Sprintf("%s %s is missing %s response documentation", strings.ToUpper(method), path, strings.Join(missing, " and ")),
		})
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}

// VerbUsageRule checks HTTP method semantics: GET and DELETE
// operations must not declare request bodies.
type VerbUsageRule struct{}

func (*VerbUsageRule) Meta() Meta {
	return Meta{
		ID:          "HTTP-VERBS",
		Category:    "http",
		MaxPoints:   7,
		Severity:    SeverityWarn,
		Requirement: "GET and DELETE operations must not declare request bodies.",
		FixHint:     "Move request payload to query parameters, or switch the operation to POST/PUT/PATCH.",
	}
}

func (r *VerbUsageRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		total++
		if (method == "get" || method == "delete") && op.Has("requestBody") {
			findings = append(findings, Finding{
				Severity: SeverityWarn,
				JSONPath: pathRef("paths", path) + "." + method + ".requestBody",
				Message:  fmt.Sprintf("%s %s declares a request body", strings.ToUpper(method), path),
			})
			return
		}
		ok++
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
