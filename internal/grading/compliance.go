package grading

// ComplianceRule maps a named compliance regime requirement onto one of
// the rule checks. Static data, organized into mandatory / recommended
// / conditional buckets per business domain.
type ComplianceRule struct {
	RuleID      string   `json:"ruleId"`
	Compliance  string   `json:"compliance"`
	Requirement string   `json:"requirement"`
	Severity    string   `json:"severity"`
	AutoFail    bool     `json:"autoFail"`
	Evidence    []string `json:"evidence,omitempty"`
}

// ComplianceSet holds the compliance rules for one domain.
type ComplianceSet struct {
	Mandatory   []ComplianceRule `json:"mandatory"`
	Recommended []ComplianceRule `json:"recommended"`
	Conditional []ComplianceRule `json:"conditional"`
}

// baseMandatory are the platform-standard requirements every domain
// inherits.
var baseMandatory = []ComplianceRule{
	{
		RuleID:      "NAM-NS",
		Compliance:  "Smackdab API Standard v2",
		Requirement: "All resources are served under the /api/v2 namespace",
		Severity:    "error",
		AutoFail:    true,
		Evidence:    []string{"paths"},
	},
	{
		RuleID:      "PAG-OFFSET",
		Compliance:  "Smackdab API Standard v2",
		Requirement: "Collections paginate with cursors, never offsets",
		Severity:    "error",
		AutoFail:    true,
		Evidence:    []string{"paths.*.get.parameters"},
	},
}

// complianceSets are the static per-domain compliance tables. Loaded
// once, never mutated.
var complianceSets = map[string]ComplianceSet{
	"general": {
		Mandatory: baseMandatory,
		Recommended: []ComplianceRule{
			{RuleID: "HTTP-STATUS", Compliance: "Smackdab API Standard v2", Requirement: "Operations document success and error responses", Severity: "warn"},
			{RuleID: "ENV-SHAPE", Compliance: "Smackdab API Standard v2", Requirement: "List payloads use the data envelope", Severity: "warn"},
		},
	},
	"finance": {
		Mandatory: append([]ComplianceRule{
			{RuleID: "SEC-AUTH", Compliance: "PCI DSS 4.0 §8", Requirement: "Every exposed operation requires an authenticated caller", Severity: "error", AutoFail: false, Evidence: []string{"components.securitySchemes", "security"}},
		}, baseMandatory...),
		Recommended: []ComplianceRule{
			{RuleID: "CACHE-HEADERS", Compliance: "PCI DSS 4.0 §3", Requirement: "Cache directives prevent storage of account data", Severity: "warn"},
		},
	},
	"healthcare": {
		Mandatory: append([]ComplianceRule{
			{RuleID: "SEC-AUTH", Compliance: "HIPAA Security Rule §164.312", Requirement: "PHI endpoints enforce access control", Severity: "error", Evidence: []string{"components.securitySchemes"}},
		}, baseMandatory...),
		Conditional: []ComplianceRule{
			{RuleID: "I18N-ACCEPT", Compliance: "Section 1557", Requirement: "Patient-facing responses support language negotiation", Severity: "warn"},
		},
	},
	"ecommerce": {
		Mandatory: baseMandatory,
		Recommended: []ComplianceRule{
			{RuleID: "WEBH-SIG", Compliance: "Smackdab API Standard v2", Requirement: "Order webhooks sign their payloads", Severity: "warn"},
		},
	},
}

// ComplianceFor returns the compliance set for a domain, falling back
// to the general set for unknown domains.
func ComplianceFor(domain string) ComplianceSet {
	if set, ok := complianceSets[domain]; ok {
		return set
	}
	return complianceSets["general"]
}
