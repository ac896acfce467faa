package decoder

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tfscope/internal/record"
)

func TestDecodeBatch_OneRecordPerNonBlankLine(t *testing.T) {
	d := newTestDecoder()
	lines := []string{
		`{"@message":"first","@timestamp":"2023-10-05T10:15:00Z"}`,
		"",
		"   ",
		`{"@message":"second"`,
		"@#$%^^",
	}

	records := d.DecodeBatch(lines, "")

	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 4, records[1].Line, "blank lines keep their positions")
	assert.Equal(t, 5, records[2].Line)
	assert.Equal(t, record.OutcomeClean, records[0].Outcome)
	assert.Equal(t, record.OutcomeRepaired, records[1].Outcome)
	assert.Equal(t, record.OutcomeFailed, records[2].Outcome)
}

func TestDecodeBatch_CarriesTimestampsForward(t *testing.T) {
	d := newTestDecoder()
	records := d.DecodeBatch([]string{
		`{"@message":"a","@timestamp":"2023-10-05T10:15:00Z"}`,
		`{"@message":"quiet"}`,
		`{"@message":"b","@timestamp":"2023-10-05T10:15:05Z"}`,
		`{"@message":"quiet again"}`,
	}, "")

	require.Len(t, records, 4)
	assert.True(t, records[1].Timestamp.Equal(records[0].Timestamp))
	assert.True(t, records[3].Timestamp.Equal(records[2].Timestamp))
}

func TestDecodeBatch_RunsEnrichment(t *testing.T) {
	d := newTestDecoder()
	records := d.DecodeBatch([]string{
		`{"@message":"start","@timestamp":"2023-10-05T10:15:00Z","tf_req_id":"req-9"}`,
		`{"@message":"end","@timestamp":"2023-10-05T10:15:03Z","tf_req_id":"req-9"}`,
	}, "")

	require.Len(t, records, 2)
	assert.Equal(t, 3*time.Second, records[0].Duration)
	assert.Equal(t, 3*time.Second, records[1].Duration)
}

func TestDecodeBatch_Idempotent(t *testing.T) {
	d := newTestDecoder()
	lines := []string{
		`{"@message":"a","@timestamp":"2023-10-05T10:15:00Z","tf_req_id":"req-1"}`,
		`not json at all`,
		`{"@message":"b","tf_req_id":"req-1"`,
	}

	first := d.DecodeBatch(lines, "source.log")
	second := d.DecodeBatch(lines, "source.log")

	assert.Equal(t, first, second)
}

func TestDecodeReader(t *testing.T) {
	d := newTestDecoder()
	input := `{"@message":"a","@timestamp":"2023-10-05T10:15:00Z"}` + "\n\n" + `{"@message":"b"}` + "\n"

	records, err := d.DecodeReader(strings.NewReader(input), "stream.log")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, "stream.log", records[0].Source)
}
