package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tfscope/internal/record"
)

func ts(sec int) time.Time {
	return time.Date(2023, 10, 5, 10, 15, sec, 0, time.UTC)
}

func TestApply_SharedCorrelationGetsGroupDuration(t *testing.T) {
	records := []record.Record{
		{CorrelationID: "req-1", Timestamp: ts(0)},
		{CorrelationID: "req-1", Timestamp: ts(4)},
		{CorrelationID: "req-1", Timestamp: ts(2)},
	}

	Apply(records)

	for i := range records {
		assert.Equal(t, 4*time.Second, records[i].Duration, "member %d", i)
	}
}

func TestApply_CoincidingTimestampsFloorToOneMillisecond(t *testing.T) {
	records := []record.Record{
		{CorrelationID: "req-1", Timestamp: ts(0)},
		{CorrelationID: "req-1", Timestamp: ts(0)},
	}

	Apply(records)

	assert.Equal(t, time.Millisecond, records[0].Duration)
	assert.Equal(t, time.Millisecond, records[1].Duration)
}

func TestApply_SingletonAndUncorrelatedUntouched(t *testing.T) {
	records := []record.Record{
		{CorrelationID: "lonely", Timestamp: ts(0)},
		{Timestamp: ts(1)},
		{CorrelationID: "pair", Timestamp: ts(2)},
		{CorrelationID: "pair", Timestamp: ts(5)},
	}

	Apply(records)

	assert.Zero(t, records[0].Duration)
	assert.Zero(t, records[1].Duration)
	assert.Equal(t, 3*time.Second, records[2].Duration)
	assert.Equal(t, 3*time.Second, records[3].Duration)
}

func TestApply_IgnoresZeroTimestamps(t *testing.T) {
	records := []record.Record{
		{CorrelationID: "req-1", Timestamp: ts(0)},
		{CorrelationID: "req-1"},
		{CorrelationID: "req-1", Timestamp: ts(2)},
	}

	Apply(records)

	// Bounds come from the two real timestamps; every member still
	// receives the group duration.
	for i := range records {
		assert.Equal(t, 2*time.Second, records[i].Duration, "member %d", i)
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	records := []record.Record{
		{ID: "a", CorrelationID: "g", Timestamp: ts(0)},
		{ID: "b", CorrelationID: "g", Timestamp: ts(1)},
		{ID: "c", Timestamp: ts(2)},
	}

	Apply(records)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}
