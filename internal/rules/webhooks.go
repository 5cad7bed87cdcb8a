package rules

import (
	"fmt"
	"strings"
)

// signatureHeader is the header every webhook delivery must carry so
// receivers can verify the payload origin.
const signatureHeader = "X-Webhook-Signature"

// WebhookSignatureRule checks that declared webhooks document payload
// signing via the X-Webhook-Signature header.
//
// Baseline: a spec without a webhooks object scores full marks.
type WebhookSignatureRule struct{}

func (*WebhookSignatureRule) Meta() Meta {
	return Meta{
		ID:          "WEBH-SIG",
		Category:    "webhooks",
		MaxPoints:   10,
		Severity:    SeverityWarn,
		Requirement: "Every declared webhook must document the X-Webhook-Signature header on its delivery request.",
		FixHint:     "Add an X-Webhook-Signature header parameter to the webhook's post operation.",
	}
}

func (r *WebhookSignatureRule) Check(spec *Spec) Report {
	m := r.Meta()

	webhooks := spec.Get("webhooks")
	names := webhooks.Keys()
	if len(names) == 0 {
		return report(m, m.MaxPoints, nil)
	}

	total, ok := 0, 0
	var findings []Finding
	for _, name := range names {
		total++
		if webhookSigned(webhooks.Get(name)) {
			ok++
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			JSONPath: pathRef("webhooks", name),
			Message:  fmt.Sprintf("Webhook %q does not document the %s header", name, signatureHeader),
		})
	}

	return report(m, proportional(m.MaxPoints, ok, total), findings)
}

// webhookSigned scans every operation under a webhook path item for a
// signature header parameter.
func webhookSigned(item *Spec) bool {
	for _, method := range item.Keys() {
		if !isHTTPMethodName(method) {
			continue
		}
		for _, h := range headerParams(item.Get(method)) {
			if strings.EqualFold(h, signatureHeader) {
				return true
			}
		}
	}
	return false
}

func isHTTPMethodName(m string) bool {
	switch strings.ToLower(m) {
	case "get", "put", "post", "delete", "options", "head", "patch", "trace":
		return true
	}
	return false
}
