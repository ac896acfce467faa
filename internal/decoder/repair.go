package decoder

import "strings"

// repairLine attempts structural repair of a line that failed strict
// JSON parsing. Strategies are tried in fixed order; the first one
// whose output differs from the input is returned. No backtracking
// across strategies: if the repaired text still fails to parse, the
// cascade advances to regex extraction.
//
// Strategies:
//  1. The line opens an object but never closes it: append a closing
//     quote (unless it already ends in one) and the missing brace.
//     Handles truncated writer output, the most common damage.
//  2. An object-opening token appears mid-line (a prefix of non-JSON
//     noise): extract from that token to end of line and close the
//     brace if missing.
//
// Returns the repaired text and true, or "" and false when no strategy
// applies.
func repairLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "{") && !strings.HasSuffix(trimmed, "}") {
		repaired := trimmed
		if !strings.HasSuffix(repaired, `"`) {
			repaired += `"`
		}
		return repaired + "}", true
	}

	if idx := strings.Index(trimmed, "{"); idx > 0 {
		partial := trimmed[idx:]
		if !strings.HasSuffix(partial, "}") {
			partial += "}"
		}
		return partial, true
	}

	return "", false
}
