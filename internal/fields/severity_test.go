package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tfscope/internal/record"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		text string
		want record.Severity
	}{
		{
			name: "explicit level field",
			data: map[string]any{"@level": "debug"},
			want: record.SeverityDebug,
		},
		{
			name: "level is case-insensitive",
			data: map[string]any{"@level": "ERROR"},
			want: record.SeverityError,
		},
		{
			name: "warning normalizes to warn",
			data: map[string]any{"@level": "warning"},
			want: record.SeverityWarn,
		},
		{
			name: "unknown level falls back to message scan",
			data: map[string]any{"@level": "critical", "@message": "operation failed"},
			want: record.SeverityError,
		},
		{
			name: "error keyword in message",
			data: map[string]any{"@message": "an error occurred"},
			want: record.SeverityError,
		},
		{
			name: "error outranks warn in same message",
			data: map[string]any{"@message": "failed with warning"},
			want: record.SeverityError,
		},
		{
			name: "warn keyword",
			data: map[string]any{"@message": "deprecation warning"},
			want: record.SeverityWarn,
		},
		{
			name: "trace keyword",
			data: map[string]any{"@message": "trace output follows"},
			want: record.SeverityTrace,
		},
		{
			name: "raw text scanned when no message field",
			data: map[string]any{},
			text: "panic: goroutine stack",
			want: record.SeverityError,
		},
		{
			name: "defaults to info",
			data: map[string]any{"@message": "all quiet"},
			want: record.SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Severity(tt.data, tt.text))
		})
	}
}
