package decoder

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/roach88/tfscope/internal/fields"
	"github.com/roach88/tfscope/internal/record"
)

const (
	// defaultMaxMessageLen bounds messages synthesized from raw line
	// text (a clean structured message field is never truncated).
	defaultMaxMessageLen = 200

	// failurePrefixLen bounds the line prefix quoted in failure records.
	failurePrefixLen = 100
)

// failureMarker annotates messages of records no cascade stage could
// recover.
const failureMarker = "JSON_PARSE_ERROR"

// Option configures a Decoder.
type Option func(*Decoder)

// WithClock replaces the wall clock used for the final timestamp
// fallback. Tests pass a FixedClock.
func WithClock(c Clock) Option {
	return func(d *Decoder) { d.clock = c }
}

// WithMaxMessageLen overrides the bound on messages synthesized from
// raw text.
func WithMaxMessageLen(n int) Option {
	return func(d *Decoder) { d.maxMessageLen = n }
}

// Decoder turns raw log lines into normalized records via the ordered
// decode cascade. A Decoder is stateless across lines; the timestamp
// accumulator travels in State.
type Decoder struct {
	clock         Clock
	maxMessageLen int
}

// New creates a Decoder with the system clock and default bounds.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		clock:         SystemClock{},
		maxMessageLen: defaultMaxMessageLen,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State is the timestamp accumulator threaded through a batch decode.
// The zero value means no line has derived a timestamp yet.
type State struct {
	last    time.Time
	derived bool
}

// LastTimestamp returns the most recent derived timestamp and whether
// one exists.
func (s State) LastTimestamp() (time.Time, bool) {
	return s.last, s.derived
}

// DecodeLine produces exactly one record for one input line. It never
// fails: a panic anywhere in the cascade degrades the line to a
// failure record. The returned State carries the timestamp accumulator
// forward to the next line.
func (d *Decoder) DecodeLine(st State, line string, lineNo int, sourceHint string) (rec record.Record, next State) {
	defer func() {
		if r := recover(); r != nil {
			rec, next = d.failureRecord(st, line, lineNo, sourceHint, fmt.Sprintf("decoder panic: %v", r))
		}
	}()

	// Stage 1: strict parse.
	var data map[string]any
	strictErr := json.Unmarshal([]byte(line), &data)
	if strictErr == nil && data != nil {
		return d.buildRecord(st, data, line, lineNo, sourceHint, record.OutcomeClean, "")
	}
	if strictErr == nil {
		strictErr = fmt.Errorf("line is not a JSON object")
	}

	// Stage 2: structural repair, one candidate, one re-parse.
	if repaired, ok := repairLine(line); ok {
		var repairedData map[string]any
		if err := json.Unmarshal([]byte(repaired), &repairedData); err == nil && repairedData != nil {
			return d.buildRecord(st, repairedData, line, lineNo, sourceHint,
				record.OutcomeRepaired, "structural repair: "+strictErr.Error())
		}
	}

	// Stage 3: regex field salvage.
	if extracted := extractFields(line); extracted != nil {
		return d.buildRecord(st, extracted, line, lineNo, sourceHint,
			record.OutcomeExtracted, "regex extraction: "+strictErr.Error())
	}

	// Stage 4: nothing recoverable.
	return d.failureRecord(st, line, lineNo, sourceHint, strictErr.Error())
}

// buildRecord materializes a record from whatever field map a cascade
// stage recovered. All stages share this path: inference never special-
// cases the decode stage that fed it.
func (d *Decoder) buildRecord(st State, data map[string]any, line string, lineNo int, sourceHint string, outcome record.Outcome, reason string) (record.Record, State) {
	now := d.clock.Now()
	ts, next := d.resolveTimestamp(st, data, line, now)

	msg, ok := fields.LookupString(data, fields.FieldMessage)
	if !ok {
		msg = truncate(line, d.maxMessageLen)
	}

	module, _ := fields.LookupString(data, fields.FieldModule)
	resourceType, _ := fields.LookupString(data, fields.FieldResourceType)
	dataSourceType, _ := fields.LookupString(data, fields.FieldDataSourceType)
	rpcMethod, _ := fields.LookupString(data, fields.FieldRPCMethod)
	providerAddr, _ := fields.LookupString(data, fields.FieldProviderAddr)

	rec := record.Record{
		ID:             record.ID(ts, lineNo, line),
		Timestamp:      ts,
		Severity:       fields.Severity(data, line),
		Message:        msg,
		Module:         module,
		CorrelationID:  fields.CorrelationID(data, line),
		ResourceType:   resourceType,
		DataSourceType: dataSourceType,
		RPCMethod:      rpcMethod,
		ProviderAddr:   providerAddr,
		Operation:      fields.Operation(data, line, sourceHint),
		RawFields:      data,
		Blocks:         fields.Blocks(data),
		Outcome:        outcome,
		FailureReason:  reason,
		Line:           lineNo,
		Source:         sourceHint,
	}
	return rec, next
}

// failureRecord synthesizes the stage-4 record: severity error,
// operation unknown, message bounded to a prefix of the offending
// line. The original line and the reason survive in RawFields so no
// information is dropped.
func (d *Decoder) failureRecord(st State, line string, lineNo int, sourceHint, reason string) (record.Record, State) {
	now := d.clock.Now()
	ts, next := d.resolveTextTimestamp(st, line, now)

	rec := record.Record{
		ID:        record.ID(ts, lineNo, line),
		Timestamp: ts,
		Severity:  record.SeverityError,
		Message:   fmt.Sprintf("%s: %s - %s", failureMarker, reason, truncate(line, failurePrefixLen)),
		Module:    "parser",
		Operation: record.OperationUnknown,
		RawFields: map[string]any{
			"original_line": line,
			"error_reason":  reason,
		},
		Outcome:       record.OutcomeFailed,
		FailureReason: reason,
		Line:          lineNo,
		Source:        sourceHint,
	}
	return rec, next
}

// resolveTimestamp applies the fallback chain: field inference, then
// the batch accumulator, then wall clock. Only a timestamp actually
// derived from the line advances the accumulator; inherited and
// wall-clock values do not.
func (d *Decoder) resolveTimestamp(st State, data map[string]any, line string, now time.Time) (time.Time, State) {
	if ts, ok := fields.Timestamp(data, line, now); ok {
		return ts, State{last: ts, derived: true}
	}
	if st.derived {
		return st.last, st
	}
	return now, st
}

// resolveTextTimestamp is resolveTimestamp for failure records, where
// no field map exists and only the raw text can be scanned.
func (d *Decoder) resolveTextTimestamp(st State, line string, now time.Time) (time.Time, State) {
	if ts, ok := fields.TimestampFromText(line, now); ok {
		return ts, State{last: ts, derived: true}
	}
	if st.derived {
		return st.last, st
	}
	return now, st
}

// truncate bounds s to at most n bytes without splitting a multi-byte
// rune, so bounded messages stay valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
