package rules

import (
	"fmt"
	"strings"
)

// LocaleHeaderRule checks that read operations accept an
// Accept-Language header so responses can be localized.
//
// Baseline: a spec without paths scores full marks — the documented
// "no paths" baseline for i18n.
type LocaleHeaderRule struct{}

func (*LocaleHeaderRule) Meta() Meta {
	return Meta{
		ID:          "I18N-ACCEPT",
		Category:    "i18n",
		MaxPoints:   10,
		Severity:    SeverityInfo,
		Requirement: "Read operations should accept an Accept-Language header parameter.",
		FixHint:     "Add an Accept-Language header parameter to the operation or its path item.",
	}
}

func (r *LocaleHeaderRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	spec.Operations(func(path, method string, op *Spec) {
		if method != "get" {
			return
		}
		total++
		for _, h := range headerParams(op) {
			if strings.EqualFold(h, "Accept-Language") {
				ok++
				return
			}
		}
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			JSONPath: pathRef("paths", path) + ".get.parameters",
			Message:  fmt.Sprintf("GET %s does not accept an Accept-Language header", path),
		})
	})

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
