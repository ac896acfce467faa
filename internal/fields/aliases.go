package fields

// aliasSet maps one canonical field to the raw keys that may carry it.
// Aliases are tried in order; the first present non-empty value wins.
type aliasSet struct {
	Canonical string
	Aliases   []string
}

// Canonical field names used by the decoder.
const (
	FieldTimestamp      = "timestamp"
	FieldLevel          = "level"
	FieldMessage        = "message"
	FieldModule         = "module"
	FieldCorrelationID  = "correlation_id"
	FieldResourceType   = "resource_type"
	FieldDataSourceType = "data_source_type"
	FieldRPCMethod      = "rpc_method"
	FieldProviderAddr   = "provider_address"
)

// fieldAliases is the static lookup table from canonical fields to the
// keys Terraform's JSON log stream (and close relatives) use for them.
// Order within each alias list is the lookup priority.
var fieldAliases = []aliasSet{
	{FieldTimestamp, []string{"@timestamp", "timestamp"}},
	{FieldLevel, []string{"@level", "level"}},
	{FieldMessage, []string{"@message", "message"}},
	{FieldModule, []string{"@module", "module"}},
	{FieldCorrelationID, []string{"tf_req_id"}},
	{FieldResourceType, []string{"tf_resource_type"}},
	{FieldDataSourceType, []string{"tf_data_source_type"}},
	{FieldRPCMethod, []string{"tf_rpc"}},
	{FieldProviderAddr, []string{"tf_provider_addr"}},
}

// aliasIndex is derived from fieldAliases at init for O(1) lookup.
var aliasIndex = func() map[string][]string {
	idx := make(map[string][]string, len(fieldAliases))
	for _, set := range fieldAliases {
		idx[set.Canonical] = set.Aliases
	}
	return idx
}()

// Lookup resolves a canonical field against a raw map via the alias
// table. Returns the first present value and true, or nil and false.
func Lookup(data map[string]any, canonical string) (any, bool) {
	for _, key := range aliasIndex[canonical] {
		if v, ok := data[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// LookupString resolves a canonical field to a non-empty string.
// Non-string values are ignored.
func LookupString(data map[string]any, canonical string) (string, bool) {
	for _, key := range aliasIndex[canonical] {
		if s, ok := data[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
