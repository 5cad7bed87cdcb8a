package grading

import (
	"sort"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/rules"
)

// evaluateAutoFail walks rule-reported reasons plus the domain's
// mandatory compliance set and produces the pass/fail gate. Auto-fail
// is a gate, not a score modifier: a numerically high total still
// fails when a mandatory requirement is violated.
//
// A violation triggers the gate when the originating rule is marked
// auto-fail, or when an error-severity finding lands on a mandatory
// compliance rule flagged auto-fail for the domain.
func evaluateAutoFail(reg *rules.Registry, domain string, reports map[string]rules.Report, findings []rules.Finding) (bool, []string) {
	seen := make(map[string]bool)
	var reasons []string
	add := func(reason string) {
		if reason == "" || seen[reason] {
			return
		}
		seen[reason] = true
		reasons = append(reasons, reason)
	}

	// Reasons reported directly by auto-fail rules.
	for _, rule := range reg.All() {
		m := rule.Meta()
		rep, ok := reports[m.ID]
		if !ok || !m.AutoFail {
			continue
		}
		for _, reason := range rep.AutoFailReasons {
			add(reason)
		}
	}

	// Mandatory compliance violations: an error finding against a
	// mandatory auto-fail rule trips the gate even if the rule itself
	// reported no reason text.
	mandatory := make(map[string]ComplianceRule)
	for _, cr := range ComplianceFor(domain).Mandatory {
		if cr.AutoFail {
			mandatory[cr.RuleID] = cr
		}
	}
	for _, f := range findings {
		cr, isMandatory := mandatory[f.RuleID]
		if !isMandatory || f.Severity != rules.SeverityError {
			continue
		}
		if rep, ok := reports[f.RuleID]; ok && len(rep.AutoFailReasons) > 0 {
			continue // already covered by the rule's own reasons
		}
		add(cr.Requirement + " (" + f.RuleID + ")")
	}

	sort.Strings(reasons)
	return len(reasons) > 0, reasons
}
