// Package timeline aggregates enriched record batches into
// display-ready spans.
//
// Primary grouping is by (correlation id, operation class). When no
// record in the batch carries a correlation id the aggregator falls
// back to wall-clock gap grouping so a timeline always renders.
// Spans are always emitted sorted by start time ascending, regardless
// of grouping mode.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roach88/tfscope/internal/record"
)

const (
	// MinSpanDuration is the display floor: every span reports at
	// least this duration even when raw start equals end.
	MinSpanDuration = time.Second

	// GapThreshold starts a new fallback group when a record is more
	// than this far from the current group's start.
	GapThreshold = 5 * time.Second
)

// Span is one aggregated interval for timeline display.
type Span struct {
	ID string `json:"id"`

	// Label combines the dominant operation class with the distinct
	// resource types seen, e.g. "apply - aws_instance, aws_s3_bucket".
	Label string `json:"label"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Duration is the display duration, floored to MinSpanDuration.
	Duration time.Duration `json:"duration"`

	// RawDuration is the unfloored interval, kept for diagnostics.
	RawDuration time.Duration `json:"raw_duration"`

	Operation  record.Operation `json:"operation"`
	Resources  []string         `json:"resources,omitempty"`
	EntryCount int              `json:"entry_count"`

	// TimeBased marks spans produced by the gap-grouping fallback.
	TimeBased bool `json:"time_based,omitempty"`
}

// Build aggregates an enriched batch into spans. The input order is
// never modified; only the derived span sequence is sorted.
func Build(records []record.Record) []Span {
	spans := correlationSpans(records)
	if len(spans) == 0 {
		spans = timeBasedSpans(records)
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start.Before(spans[j].Start)
	})
	return spans
}

// correlationSpans implements the primary grouping by
// (correlation id, operation class). Group keys are processed in
// first-encounter order so output is deterministic before the final
// sort.
func correlationSpans(records []record.Record) []Span {
	groups := make(map[string][]record.Record)
	var order []string
	for _, rec := range records {
		if rec.CorrelationID == "" {
			continue
		}
		key := fmt.Sprintf("%s-%s", rec.CorrelationID, rec.Operation)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	var spans []Span
	for _, key := range order {
		members := groups[key]
		start, end, ok := timeBounds(members)
		if !ok {
			continue
		}

		op := dominantOperation(members)
		resources := distinctResources(members)
		raw := end.Sub(start)

		spans = append(spans, Span{
			ID:          key,
			Label:       spanLabel(op, resources),
			Start:       start,
			End:         end,
			Duration:    floorDuration(raw),
			RawDuration: raw,
			Operation:   op,
			Resources:   resources,
			EntryCount:  len(members),
		})
	}
	return spans
}

// timeBasedSpans is the fallback grouping: sort by timestamp and cut a
// new group whenever the gap from the current group's start exceeds
// GapThreshold.
func timeBasedSpans(records []record.Record) []Span {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]record.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var groups [][]record.Record
	current := []record.Record{sorted[0]}
	groupStart := sorted[0].Timestamp
	for _, rec := range sorted[1:] {
		if rec.Timestamp.Sub(groupStart) > GapThreshold {
			groups = append(groups, current)
			current = []record.Record{rec}
			groupStart = rec.Timestamp
			continue
		}
		current = append(current, rec)
	}
	groups = append(groups, current)

	spans := make([]Span, 0, len(groups))
	for i, members := range groups {
		start, end, ok := timeBounds(members)
		if !ok {
			continue
		}
		op := dominantOperation(members)
		raw := end.Sub(start)

		spans = append(spans, Span{
			ID:          fmt.Sprintf("time-group-%d", i),
			Label:       fmt.Sprintf("%s - Time Group %d", op, i+1),
			Start:       start,
			End:         end,
			Duration:    floorDuration(raw),
			RawDuration: raw,
			Operation:   op,
			EntryCount:  len(members),
			TimeBased:   true,
		})
	}
	return spans
}

// timeBounds returns min and max timestamp over members with a defined
// timestamp. ok is false when no member has one.
func timeBounds(members []record.Record) (start, end time.Time, ok bool) {
	for _, rec := range members {
		if rec.Timestamp.IsZero() {
			continue
		}
		if !ok {
			start, end, ok = rec.Timestamp, rec.Timestamp, true
			continue
		}
		if rec.Timestamp.Before(start) {
			start = rec.Timestamp
		}
		if rec.Timestamp.After(end) {
			end = rec.Timestamp
		}
	}
	return start, end, ok
}

// dominantOperation returns the most frequent non-unknown operation
// among members, ties broken by first-encountered order. All-unknown
// groups stay unknown.
func dominantOperation(members []record.Record) record.Operation {
	counts := make(map[record.Operation]int)
	var order []record.Operation
	for _, rec := range members {
		if rec.Operation == record.OperationUnknown {
			continue
		}
		if counts[rec.Operation] == 0 {
			order = append(order, rec.Operation)
		}
		counts[rec.Operation]++
	}

	best := record.OperationUnknown
	bestCount := 0
	for _, op := range order {
		if counts[op] > bestCount {
			best = op
			bestCount = counts[op]
		}
	}
	return best
}

// distinctResources collects the distinct resource types seen, in
// first-encounter order.
func distinctResources(members []record.Record) []string {
	seen := make(map[string]bool)
	var resources []string
	for _, rec := range members {
		if rec.ResourceType == "" || seen[rec.ResourceType] {
			continue
		}
		seen[rec.ResourceType] = true
		resources = append(resources, rec.ResourceType)
	}
	return resources
}

func spanLabel(op record.Operation, resources []string) string {
	if len(resources) == 0 {
		return fmt.Sprintf("%s - General", op)
	}
	return fmt.Sprintf("%s - %s", op, strings.Join(resources, ", "))
}

func floorDuration(d time.Duration) time.Duration {
	if d < MinSpanDuration {
		return MinSpanDuration
	}
	return d
}
