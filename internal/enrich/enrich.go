// Package enrich computes cross-record relationships over a decoded
// batch. It is a pure batch-level pass: the only mutation is the
// Duration field, and record order is never changed.
package enrich

import (
	"time"

	"github.com/roach88/tfscope/internal/record"
)

// minDuration is the floor for group durations. Records sharing a
// correlation id never report a zero interval even when their
// timestamps coincide.
const minDuration = time.Millisecond

// Apply groups records by correlation id and assigns each group of
// size >= 2 a single duration: max minus min over the members'
// timestamps, clamped to at least one millisecond. Every member of the
// group receives the same value. Records without a correlation id, and
// singleton groups, are left untouched.
func Apply(records []record.Record) {
	groups := make(map[string][]int)
	for i := range records {
		if id := records[i].CorrelationID; id != "" {
			groups[id] = append(groups[id], i)
		}
	}

	for _, members := range groups {
		if len(members) < 2 {
			continue
		}

		var start, end time.Time
		seen := false
		for _, i := range members {
			ts := records[i].Timestamp
			if ts.IsZero() {
				continue
			}
			if !seen {
				start, end = ts, ts
				seen = true
				continue
			}
			if ts.Before(start) {
				start = ts
			}
			if ts.After(end) {
				end = ts
			}
		}
		if !seen {
			continue
		}

		duration := end.Sub(start)
		if duration < minDuration {
			duration = minDuration
		}
		for _, i := range members {
			records[i].Duration = duration
		}
	}
}
