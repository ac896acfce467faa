package harness

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tfscope/internal/record"
)

// TraceSnapshot captures a scenario execution for golden comparison.
//
// Record ids are deliberately excluded: they embed a content hash, and
// golden files should stay reviewable by hand. Id determinism has its
// own tests in the record package.
type TraceSnapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Records      []RecordSnapshot `json:"records"`
	Spans        []SpanSnapshot   `json:"spans"`
}

// RecordSnapshot is the golden-file projection of one record.
type RecordSnapshot struct {
	Line          int              `json:"line"`
	Outcome       record.Outcome   `json:"outcome"`
	Severity      record.Severity  `json:"severity"`
	Operation     record.Operation `json:"operation"`
	Timestamp     string           `json:"timestamp"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	Message       string           `json:"message"`
	DurationMS    int64            `json:"duration_ms,omitempty"`
}

// SpanSnapshot is the golden-file projection of one timeline span.
type SpanSnapshot struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Start      string `json:"start"`
	End        string `json:"end"`
	EntryCount int    `json:"entry_count"`
	TimeBased  bool   `json:"time_based,omitempty"`
}

func snapshot(name string, result *Result) TraceSnapshot {
	snap := TraceSnapshot{
		ScenarioName: name,
		Records:      make([]RecordSnapshot, 0, len(result.Records)),
		Spans:        make([]SpanSnapshot, 0, len(result.Spans)),
	}
	for _, rec := range result.Records {
		snap.Records = append(snap.Records, RecordSnapshot{
			Line:          rec.Line,
			Outcome:       rec.Outcome,
			Severity:      rec.Severity,
			Operation:     rec.Operation,
			Timestamp:     rec.Timestamp.UTC().Format(time.RFC3339Nano),
			CorrelationID: rec.CorrelationID,
			Message:       rec.Message,
			DurationMS:    rec.Duration.Milliseconds(),
		})
	}
	for _, span := range result.Spans {
		snap.Spans = append(snap.Spans, SpanSnapshot{
			ID:         span.ID,
			Label:      span.Label,
			Start:      span.Start.UTC().Format(time.RFC3339Nano),
			End:        span.End.UTC().Format(time.RFC3339Nano),
			EntryCount: span.EntryCount,
			TimeBased:  span.TimeBased,
		})
	}
	return snap
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot(scenario.Name, result), "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
