package fields

import "regexp"

// Correlation id shapes searched in message text, in priority order:
// explicit req-id/request-id tokens first, then a bare UUID.
var correlationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)req[_\-]?id[=:\s]+([a-f0-9\-]+)`),
	regexp.MustCompile(`(?i)request[_-]id[=:\s]+([a-f0-9\-]+)`),
	regexp.MustCompile(`([a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12})`),
}

// CorrelationID finds the id grouping this record with its logical
// request. An explicit structured field wins; otherwise the message
// text (or raw line) is searched for a request-id-shaped token, then a
// UUID-shaped token.
func CorrelationID(data map[string]any, text string) string {
	if id, ok := LookupString(data, FieldCorrelationID); ok {
		return id
	}

	msg, ok := LookupString(data, FieldMessage)
	if !ok {
		msg = text
	}
	for _, pat := range correlationPatterns {
		if m := pat.FindStringSubmatch(msg); m != nil {
			return m[1]
		}
	}
	return ""
}
