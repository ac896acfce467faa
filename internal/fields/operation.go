package fields

import (
	"regexp"
	"strings"

	"github.com/roach88/tfscope/internal/record"
)

// rpcOperations maps Terraform plugin-protocol RPC method names to
// operation classes. Schema and validation RPCs both classify as
// validate: they happen during config checking, not mutation.
var rpcOperations = map[string]record.Operation{
	"GetProviderSchema":          record.OperationValidate,
	"ValidateProviderConfig":     record.OperationValidate,
	"ValidateDataResourceConfig": record.OperationValidate,
	"ValidateResourceConfig":     record.OperationValidate,
	"PlanResourceChange":         record.OperationPlan,
	"ApplyResourceChange":        record.OperationApply,
}

// operationPatterns are the ordered regex families applied to message
// text. Families are tried in fixed priority plan -> apply -> validate;
// within a family the patterns are alternatives.
var operationPatterns = []struct {
	Operation record.Operation
	Patterns  []*regexp.Regexp
}{
	{record.OperationPlan, compileAll(
		`terraform.*plan`,
		`plan.*operation`,
		`PlanResourceChange`,
		`planned.*action`,
		`refresh.*plan`,
		`creating.*plan`,
	)},
	{record.OperationApply, compileAll(
		`terraform.*apply`,
		`apply.*operation`,
		`ApplyResourceChange`,
		`applying.*configuration`,
		`create.*resource`,
		`creating.*resource`,
	)},
	{record.OperationValidate, compileAll(
		`validate`,
		`validation`,
		`validating`,
		`ValidateResourceConfig`,
		`ValidateDataResourceConfig`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// Operation classifies a record. Resolution order, fixed and never
// data-dependent:
//  1. known RPC method through the rpcOperations table
//  2. ordered regex families against the message text
//  3. source filename hint ("plan"/"apply" substring)
//  4. unknown
func Operation(data map[string]any, text, sourceHint string) record.Operation {
	if rpc, ok := LookupString(data, FieldRPCMethod); ok {
		if op, ok := rpcOperations[rpc]; ok {
			return op
		}
	}

	msg, ok := LookupString(data, FieldMessage)
	if !ok {
		msg = text
	}
	for _, family := range operationPatterns {
		for _, pat := range family.Patterns {
			if pat.MatchString(msg) {
				return family.Operation
			}
		}
	}

	hint := strings.ToLower(sourceHint)
	switch {
	case strings.Contains(hint, "plan"):
		return record.OperationPlan
	case strings.Contains(hint, "apply"):
		return record.OperationApply
	}
	return record.OperationUnknown
}
