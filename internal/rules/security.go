package rules

// SecuritySchemeRule checks that the contract declares security
// schemes and applies them, either globally or per operation.
//
// Scoring tiers: schemes declared and applied earns full marks;
// declared but never applied earns 7; no schemes at all earns 4. A
// missing components object is treated the same as no schemes — the
// rule degrades, it never errors.
type SecuritySchemeRule struct{}

func (*SecuritySchemeRule) Meta() Meta {
	return Meta{
		ID:          "SEC-AUTH",
		Category:    "security",
		MaxPoints:   10,
		Severity:    SeverityWarn,
		Requirement: "The contract must declare security schemes under components.securitySchemes and apply them globally or per operation.",
		FixHint:     "Declare a scheme (e.g. bearerAuth) under components.securitySchemes and reference it from a security block.",
	}
}

func (r *SecuritySchemeRule) Check(spec *Spec) Report {
	m := r.Meta()

	schemes := spec.Path("components", "securitySchemes")
	if len(schemes.Keys()) == 0 {
		return report(m, 4, []Finding{{
			Severity: SeverityWarn,
			JSONPath: pathRef("components", "securitySchemes"),
			Message:  "No security schemes declared",
		}})
	}

	if len(spec.Get("security").Items()) > 0 {
		return report(m, m.MaxPoints, nil)
	}

	applied := false
	spec.Operations(func(path, method string, op *Spec) {
		if len(op.Get("security").Items()) > 0 {
			applied = true
		}
	})
	if applied {
		return report(m, m.MaxPoints, nil)
	}

	return report(m, 7, []Finding{{
		Severity: SeverityWarn,
		JSONPath: pathRef("security"),
		Message:  "Security schemes are declared but never applied",
	}})
}
