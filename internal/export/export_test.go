package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tfscope/internal/record"
)

func exportRecords() []record.Record {
	return []record.Record{
		{
			ID:            "1696500900-1-aabbccdd",
			Timestamp:     time.Date(2023, 10, 5, 10, 15, 0, 0, time.UTC),
			Severity:      record.SeverityInfo,
			Message:       "plan started",
			CorrelationID: "req-001",
			Operation:     record.OperationPlan,
			Duration:      2 * time.Second,
			Outcome:       record.OutcomeClean,
			Line:          1,
			Source:        "plan.log",
		},
		{
			ID:        "1696500902-2-eeff0011",
			Timestamp: time.Date(2023, 10, 5, 10, 15, 2, 0, time.UTC),
			Severity:  record.SeverityError,
			Message:   "parse trouble",
			Operation: record.OperationUnknown,
			Outcome:   record.OutcomeFailed,
			Line:      2,
			Source:    "plan.log",
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, exportRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "2023-10-05T10:15:00Z", rows[1][0])
	assert.Equal(t, "info", rows[1][1])
	assert.Equal(t, "plan", rows[1][2])
	assert.Equal(t, "req-001", rows[1][6])
	assert.Equal(t, "2000", rows[1][9], "duration in milliseconds")
	assert.Equal(t, "", rows[2][9], "no duration renders empty")
	assert.Equal(t, "failed", rows[2][8])
}

func TestCSV_TruncatesMessage(t *testing.T) {
	long := strings.Repeat("m", csvMessageLimit+50)
	records := []record.Record{{Message: long, Line: 1}}

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1][5], csvMessageLimit)
}

func TestJSON(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, exportRecords(), now))

	var manifest Manifest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &manifest))
	assert.True(t, now.Equal(manifest.ExportedAt))
	assert.Equal(t, 2, manifest.TotalRecords)
	require.Len(t, manifest.Records, 2)
	assert.Equal(t, "plan started", manifest.Records[0].Message)
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NDJSON(&buf, exportRecords()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var rec record.Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "1696500900-1-aabbccdd", rec.ID)
	assert.Equal(t, record.OperationPlan, rec.Operation)
}
