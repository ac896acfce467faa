package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tfscope/internal/record"
)

func TestOperation(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		text string
		hint string
		want record.Operation
	}{
		{
			name: "rpc table wins over message",
			data: map[string]any{"tf_rpc": "ApplyResourceChange", "@message": "terraform plan in progress"},
			want: record.OperationApply,
		},
		{
			name: "schema rpc classifies as validate",
			data: map[string]any{"tf_rpc": "GetProviderSchema"},
			want: record.OperationValidate,
		},
		{
			name: "unknown rpc falls through to message",
			data: map[string]any{"tf_rpc": "StopProvider", "@message": "terraform plan in progress"},
			want: record.OperationPlan,
		},
		{
			name: "plan family beats validate family",
			data: map[string]any{"@message": "validating the terraform plan"},
			want: record.OperationPlan,
		},
		{
			name: "apply message pattern",
			data: map[string]any{"@message": "applying configuration now"},
			want: record.OperationApply,
		},
		{
			name: "validate message pattern",
			data: map[string]any{"@message": "validation passed"},
			want: record.OperationValidate,
		},
		{
			name: "raw text scanned when no message field",
			data: map[string]any{},
			text: "log: ApplyResourceChange round trip",
			want: record.OperationApply,
		},
		{
			name: "filename hint as last resort",
			data: map[string]any{"@message": "all quiet"},
			hint: "terraform-apply.log",
			want: record.OperationApply,
		},
		{
			name: "plan hint",
			data: map[string]any{"@message": "all quiet"},
			hint: "PLAN_output.json",
			want: record.OperationPlan,
		},
		{
			name: "nothing matches",
			data: map[string]any{"@message": "all quiet"},
			hint: "terraform.log",
			want: record.OperationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Operation(tt.data, tt.text, tt.hint))
		})
	}
}
