package grading

import (
	"strings"
)

// defaultWeight is applied when neither an exact nor a wildcard entry
// matches — including when the domain itself is unknown. Configuration
// gaps degrade to neutral weighting, they never fail a grading run.
const defaultWeight = 1.0

// WeightTable maps rule ids (exact, or wildcard prefixes like "SEC-*")
// to weight multipliers for one business domain.
type WeightTable map[string]float64

// domainWeights are the static per-domain weight tables. Loaded once
// into process-wide state and never mutated — safe to share across
// concurrent rule evaluations.
var domainWeights = map[string]WeightTable{
	"general": {},
	"finance": {
		"SEC-*":      1.5,
		"PAG-OFFSET": 1.2,
		"HTTP-*":     1.1,
	},
	"healthcare": {
		"SEC-*":  1.5,
		"I18N-*": 1.2,
	},
	"ecommerce": {
		"PAG-*":  1.3,
		"CACHE-*": 1.2,
		"WEBH-*": 1.1,
	},
}

// Resolver maps (rule id, domain) pairs to weight multipliers. Pure
// and stateless given its tables.
type Resolver struct {
	tables map[string]WeightTable
}

// NewResolver returns a Resolver over the built-in domain tables.
func NewResolver() *Resolver {
	return &Resolver{tables: domainWeights}
}

// Domains lists the domains with weight tables, for tool descriptions.
func (r *Resolver) Domains() []string {
	out := make([]string, 0, len(r.tables))
	for d := range r.tables {
		out = append(out, d)
	}
	return out
}

// Weight resolves a rule's multiplier for a domain. Lookup order:
// exact rule-id match, then the longest matching wildcard prefix,
// then the default weight 1.0.
func (r *Resolver) Weight(ruleID, domain string) float64 {
	table, ok := r.tables[strings.ToLower(strings.TrimSpace(domain))]
	if !ok {
		return defaultWeight
	}

	if w, exact := table[ruleID]; exact {
		return w
	}

	bestLen := -1
	best := defaultWeight
	for pattern, w := range table {
		prefix, isWildcard := strings.CutSuffix(pattern, "*")
		if !isWildcard || !strings.HasPrefix(ruleID, prefix) {
			continue
		}
		if len(prefix) > bestLen {
			bestLen = len(prefix)
			best = w
		}
	}
	return best
}
