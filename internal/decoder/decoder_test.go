package decoder

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tfscope/internal/record"
)

var testInstant = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestDecoder(opts ...Option) *Decoder {
	return New(append([]Option{WithClock(FixedClock{Instant: testInstant})}, opts...)...)
}

func TestDecodeLine_Clean(t *testing.T) {
	d := newTestDecoder()
	line := `{"@level":"info","@message":"Terraform plan operation starting","@timestamp":"2023-10-05T10:15:00Z","tf_req_id":"req-001","tf_resource_type":"aws_instance"}`

	rec, st := d.DecodeLine(State{}, line, 1, "plan.log")

	assert.Equal(t, record.OutcomeClean, rec.Outcome)
	assert.Empty(t, rec.FailureReason)
	assert.Equal(t, record.SeverityInfo, rec.Severity)
	assert.Equal(t, "Terraform plan operation starting", rec.Message)
	assert.Equal(t, record.OperationPlan, rec.Operation)
	assert.Equal(t, "req-001", rec.CorrelationID)
	assert.Equal(t, "aws_instance", rec.ResourceType)
	assert.Equal(t, 1, rec.Line)
	assert.Equal(t, "plan.log", rec.Source)
	assert.True(t, rec.Timestamp.Equal(time.Date(2023, 10, 5, 10, 15, 0, 0, time.UTC)))

	// Clean decodes carry the exact parsed map, nothing added or dropped.
	assert.Equal(t, map[string]any{
		"@level":           "info",
		"@message":         "Terraform plan operation starting",
		"@timestamp":       "2023-10-05T10:15:00Z",
		"tf_req_id":        "req-001",
		"tf_resource_type": "aws_instance",
	}, rec.RawFields)

	last, derived := st.LastTimestamp()
	assert.True(t, derived)
	assert.True(t, last.Equal(rec.Timestamp))
}

func TestDecodeLine_Repaired(t *testing.T) {
	d := newTestDecoder()

	rec, _ := d.DecodeLine(State{}, `{"@message":"partial write","@level":"warn"`, 4, "")

	assert.Equal(t, record.OutcomeRepaired, rec.Outcome)
	assert.Contains(t, rec.FailureReason, "structural repair")
	assert.Equal(t, "partial write", rec.Message)
	assert.Equal(t, record.SeverityWarn, rec.Severity)
	assert.Equal(t, 4, rec.Line)
}

func TestDecodeLine_Extracted(t *testing.T) {
	d := newTestDecoder()
	line := `%%% corrupted "@level": "debug" junk "tf_req_id": "abc-123" %%%`

	rec, _ := d.DecodeLine(State{}, line, 2, "")

	assert.Equal(t, record.OutcomeExtracted, rec.Outcome)
	assert.Contains(t, rec.FailureReason, "regex extraction")
	assert.Equal(t, record.SeverityDebug, rec.Severity)
	assert.Equal(t, "abc-123", rec.CorrelationID)
}

func TestDecodeLine_Failed(t *testing.T) {
	d := newTestDecoder()

	rec, _ := d.DecodeLine(State{}, "@#$%^^", 3, "")

	assert.Equal(t, record.OutcomeFailed, rec.Outcome)
	assert.True(t, rec.Failed())
	assert.Equal(t, record.SeverityError, rec.Severity)
	assert.Equal(t, record.OperationUnknown, rec.Operation)
	assert.Equal(t, "parser", rec.Module)
	assert.True(t, strings.HasPrefix(rec.Message, "JSON_PARSE_ERROR: "))
	assert.Contains(t, rec.Message, "@#$%^^")
	assert.Equal(t, "@#$%^^", rec.RawFields["original_line"])
	assert.NotEmpty(t, rec.FailureReason)
}

func TestDecodeLine_FailureMessageBoundsLinePrefix(t *testing.T) {
	d := newTestDecoder()
	line := "@" + strings.Repeat("x", 500)

	rec, _ := d.DecodeLine(State{}, line, 1, "")

	require.Equal(t, record.OutcomeFailed, rec.Outcome)
	assert.Contains(t, rec.Message, line[:failurePrefixLen])
	assert.NotContains(t, rec.Message, line[:failurePrefixLen+1])
	assert.Equal(t, line, rec.RawFields["original_line"])
}

func TestDecodeLine_FailurePrefixKeepsValidUTF8(t *testing.T) {
	d := newTestDecoder()
	line := "@" + strings.Repeat("é", 60)
	require.Greater(t, len(line), failurePrefixLen)

	rec, _ := d.DecodeLine(State{}, line, 1, "")

	require.Equal(t, record.OutcomeFailed, rec.Outcome)
	assert.True(t, utf8.ValidString(rec.Message))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := "abécd"

	// Byte 3 lands inside the two-byte é; the cut backs up to the
	// rune start.
	got := truncate(s, 3)
	assert.Equal(t, "ab", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "abé", truncate(s, 4))
	assert.Equal(t, s, truncate(s, len(s)))
}

func TestDecodeLine_NonObjectJSON(t *testing.T) {
	d := newTestDecoder()

	rec, _ := d.DecodeLine(State{}, "null", 1, "")

	assert.Equal(t, record.OutcomeFailed, rec.Outcome)
	assert.Contains(t, rec.FailureReason, "not a JSON object")
}

func TestDecodeLine_SyntheticMessageTruncated(t *testing.T) {
	d := newTestDecoder(WithMaxMessageLen(20))
	line := `{"no_message_field":"` + strings.Repeat("a", 100) + `"}`

	rec, _ := d.DecodeLine(State{}, line, 1, "")

	require.Equal(t, record.OutcomeClean, rec.Outcome)
	assert.Len(t, rec.Message, 20)
}

func TestDecodeLine_CleanMessageNeverTruncated(t *testing.T) {
	d := newTestDecoder(WithMaxMessageLen(10))
	long := strings.Repeat("m", 50)

	rec, _ := d.DecodeLine(State{}, `{"@message":"`+long+`"}`, 1, "")

	assert.Equal(t, long, rec.Message)
}

func TestDecodeLine_TimestampCarryForward(t *testing.T) {
	d := newTestDecoder()
	derived := time.Date(2023, 10, 5, 10, 15, 0, 0, time.UTC)

	rec1, st := d.DecodeLine(State{}, `{"@message":"a","@timestamp":"2023-10-05T10:15:00Z"}`, 1, "")
	require.True(t, rec1.Timestamp.Equal(derived))

	// No derivable timestamp: inherit from line 1.
	rec2, st := d.DecodeLine(st, `{"@message":"quiet"}`, 2, "")
	assert.True(t, rec2.Timestamp.Equal(derived))

	// Inheriting must not advance the accumulator.
	rec3, _ := d.DecodeLine(st, "@#$%^^", 3, "")
	assert.True(t, rec3.Timestamp.Equal(derived))
}

func TestDecodeLine_WallClockWhenNothingDerived(t *testing.T) {
	d := newTestDecoder()

	rec, st := d.DecodeLine(State{}, `{"@message":"quiet"}`, 1, "")

	assert.True(t, rec.Timestamp.Equal(testInstant))
	_, derived := st.LastTimestamp()
	assert.False(t, derived, "wall clock fallback must not advance the accumulator")
}

func TestDecodeLine_Deterministic(t *testing.T) {
	d := newTestDecoder()
	line := `{"@message":"same line","@timestamp":"2023-10-05T10:15:00Z"}`

	rec1, _ := d.DecodeLine(State{}, line, 5, "x.log")
	rec2, _ := d.DecodeLine(State{}, line, 5, "x.log")

	assert.Equal(t, rec1, rec2)
}

func TestDecodeLine_EmbeddedBlocks(t *testing.T) {
	d := newTestDecoder()
	line := `{"@message":"roundtrip","tf_http_res_body":"{\"status\":200}"}`

	rec, _ := d.DecodeLine(State{}, line, 1, "")

	require.Len(t, rec.Blocks, 1)
	assert.Equal(t, "tf_http_res_body", rec.Blocks[0].Type)
	assert.Equal(t, map[string]any{"status": float64(200)}, rec.Blocks[0].Data)
}
