package decoder

import "regexp"

// extractPattern pairs a raw field key with the named-capture pattern
// that salvages it from unparseable line text.
type extractPattern struct {
	Key     string
	Pattern *regexp.Regexp
}

// extractPatterns is the fixed set of high-value fields worth salvaging
// when both strict parsing and repair have failed. Keys use the same
// raw names a clean parse would produce, so the salvaged map flows
// through the ordinary field inference path.
var extractPatterns = []extractPattern{
	{"@timestamp", regexp.MustCompile(`"@timestamp"\s*:\s*"(?P<v>[^"]+)"`)},
	{"@level", regexp.MustCompile(`"@level"\s*:\s*"(?P<v>[^"]+)"`)},
	{"@message", regexp.MustCompile(`"@message"\s*:\s*"(?P<v>[^"]*)"`)},
	{"@module", regexp.MustCompile(`"@module"\s*:\s*"(?P<v>[^"]*)"`)},
	{"tf_req_id", regexp.MustCompile(`"tf_req_id"\s*:\s*"(?P<v>[^"]*)"`)},
	{"tf_resource_type", regexp.MustCompile(`"tf_resource_type"\s*:\s*"(?P<v>[^"]*)"`)},
	{"tf_rpc", regexp.MustCompile(`"tf_rpc"\s*:\s*"(?P<v>[^"]*)"`)},
}

// extractFields applies the fixed pattern set against raw line text.
// Returns the recovered field map, or nil when nothing matched.
func extractFields(line string) map[string]any {
	var extracted map[string]any
	for _, ep := range extractPatterns {
		m := ep.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if extracted == nil {
			extracted = make(map[string]any)
		}
		extracted[ep.Key] = m[ep.Pattern.SubexpIndex("v")]
	}
	return extracted
}
