// internal/fusion/notify.go
package fusion

import (
	"fmt"
	"strings"

	"assistant-agents/internal/models"
)

// EmailDraft is a ready-to-send plain-text notification about a conflicted
// decision. Delivery is the caller's concern; the email capability accepts
// the subject and body as-is.
type EmailDraft struct {
	Subject string
	Body    string
}

// ComposeConflictEmail builds the notification draft for a decision whose
// conflicts reach medium severity. Returns false when nothing warrants a
// notification.
func ComposeConflictEmail(d models.Decision, conflicts []Conflict) (EmailDraft, bool) {
	severity := MaxSeverity(conflicts)
	if severity != SeverityMedium && severity != SeverityHigh {
		return EmailDraft{}, false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommendation: %s\n", d.Recommendation)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n\n", d.Confidence*100)

	b.WriteString("Conflicts:\n")
	for _, c := range conflicts {
		if c.Severity == SeverityLow {
			continue
		}
		fmt.Fprintf(&b, "- [%s] %s vs %s: %s\n", c.Severity, c.Sources[0], c.Sources[1], c.Mitigation)
	}

	if len(d.Alternatives) > 0 {
		b.WriteString("\nAlternatives:\n")
		for _, alt := range d.Alternatives {
			fmt.Fprintf(&b, "- %s\n", alt)
		}
	}

	return EmailDraft{
		Subject: fmt.Sprintf("Assistant alert: %s severity schedule conflict", severity),
		Body:    b.String(),
	}, true
}
