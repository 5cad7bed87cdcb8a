package rules

import (
	"fmt"
	"strings"
)

// knownRootExtensions are the vendor extensions the platform recognizes
// at the document root.
var knownRootExtensions = map[string]bool{
	"x-api-id":       true,
	"x-audience":     true,
	"x-sunset":       true,
	"x-rate-limited": true,
}

// VendorExtensionRule checks vendor extension hygiene: root-level x-
// keys must come from the recognized set, so downstream tooling never
// meets an extension it cannot interpret.
//
// Baseline: no extensions scores full marks.
type VendorExtensionRule struct{}

func (*VendorExtensionRule) Meta() Meta {
	return Meta{
		ID:          "EXT-VENDOR",
		Category:    "extensions",
		MaxPoints:   5,
		Severity:    SeverityInfo,
		Requirement: "Root-level vendor extensions must come from the recognized x- extension set.",
		FixHint:     "Remove the unrecognized extension or register it (x-api-id, x-audience, x-sunset, x-rate-limited).",
	}
}

func (r *VendorExtensionRule) Check(spec *Spec) Report {
	m := r.Meta()

	total, ok := 0, 0
	var findings []Finding
	for _, key := range spec.Keys() {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		total++
		if knownRootExtensions[key] {
			ok++
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			JSONPath: pathRef(key),
			Message:  fmt.Sprintf("Unrecognized root vendor extension %q", key),
		})
	}

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}
