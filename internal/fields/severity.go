package fields

import (
	"strings"

	"github.com/roach88/tfscope/internal/record"
)

// severityKeywords maps keyword families to severities in fixed
// priority order. The first family with any keyword present in the
// message wins; error outranks warn outranks info and so on, so
// "failed with warning" classifies as error.
var severityKeywords = []struct {
	Severity record.Severity
	Keywords []string
}{
	{record.SeverityError, []string{"error", "failed", "failure", "panic", "crash"}},
	{record.SeverityWarn, []string{"warn", "warning"}},
	{record.SeverityInfo, []string{"info", "information"}},
	{record.SeverityDebug, []string{"debug"}},
	{record.SeverityTrace, []string{"trace"}},
}

// Severity infers the record severity. An explicit structured level
// field wins (case-insensitive); otherwise the message text is scanned
// for keyword families in fixed priority. Defaults to info.
func Severity(data map[string]any, text string) record.Severity {
	if raw, ok := LookupString(data, FieldLevel); ok {
		if sev := record.Severity(strings.ToLower(raw)); record.ValidSeverities[sev] {
			return sev
		}
		if strings.EqualFold(raw, "warning") {
			return record.SeverityWarn
		}
	}

	msg, ok := LookupString(data, FieldMessage)
	if !ok {
		msg = text
	}
	msg = strings.ToLower(msg)

	for _, family := range severityKeywords {
		for _, kw := range family.Keywords {
			if strings.Contains(msg, kw) {
				return family.Severity
			}
		}
	}
	return record.SeverityInfo
}
