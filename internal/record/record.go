package record

import "time"

// Severity is the normalized log level of a record.
type Severity string

const (
	SeverityTrace Severity = "trace"
	SeverityDebug Severity = "debug"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ValidSeverities defines the allowed severity values.
var ValidSeverities = map[Severity]bool{
	SeverityTrace: true,
	SeverityDebug: true,
	SeverityInfo:  true,
	SeverityWarn:  true,
	SeverityError: true,
}

// Operation is the coarse classification of what a log line pertains to.
type Operation string

const (
	OperationPlan     Operation = "plan"
	OperationApply    Operation = "apply"
	OperationValidate Operation = "validate"
	OperationUnknown  Operation = "unknown"
)

// Outcome records which decode cascade stage produced a record.
//
// The stages form a strictly ordered fallback chain:
//   - OutcomeClean: the line parsed as-is; RawFields is the exact parse.
//   - OutcomeRepaired: a structural defect was corrected before parsing.
//   - OutcomeExtracted: parsing failed entirely; fields were salvaged
//     by pattern matching. Usable but lower-confidence.
//   - OutcomeFailed: nothing could be recovered; the record exists to
//     preserve line accounting and is marked severity=error.
type Outcome string

const (
	OutcomeClean     Outcome = "clean"
	OutcomeRepaired  Outcome = "repaired"
	OutcomeExtracted Outcome = "extracted"
	OutcomeFailed    Outcome = "failed"
)

// EmbeddedBlock is a sub-document found nested in a known payload field
// (request/response bodies and the like).
type EmbeddedBlock struct {
	// Type is the field name the block was extracted from.
	Type string `json:"type"`

	// Data is the parsed payload, or the raw string when Raw is true.
	Data any `json:"data"`

	// Raw marks payloads that did not parse as structured data.
	Raw bool `json:"raw,omitempty"`
}

// Record is the canonical decoded unit: one normalized record per
// non-blank input line, however damaged the line was.
type Record struct {
	// ID is derived deterministically from (timestamp, line number,
	// content hash). Stable across re-runs on identical input.
	ID string `json:"id"`

	// Timestamp is always populated via the decoder's fallback chain:
	// derived from the line, inherited from the last derivable line in
	// the batch, or wall clock as the final resort.
	Timestamp time.Time `json:"timestamp"`

	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// Module identifies the emitting subsystem, when known.
	Module string `json:"module,omitempty"`

	// CorrelationID groups related records belonging to one logical
	// request/operation (tf_req_id in Terraform's JSON logs).
	CorrelationID string `json:"correlation_id,omitempty"`

	// Fields carried through verbatim from the structured payload.
	ResourceType   string `json:"resource_type,omitempty"`
	DataSourceType string `json:"data_source_type,omitempty"`
	RPCMethod      string `json:"rpc_method,omitempty"`
	ProviderAddr   string `json:"provider_address,omitempty"`

	Operation Operation `json:"operation_class"`

	// RawFields holds all original key/value pairs recovered for this
	// line. Possibly empty only for hard-failure records.
	RawFields map[string]any `json:"raw_fields"`

	// Blocks are sub-documents found nested in known payload fields,
	// ordered by the fixed field-name list, not input order.
	Blocks []EmbeddedBlock `json:"embedded_blocks,omitempty"`

	// Duration is set only by the relationship enricher, on records
	// whose CorrelationID is shared by at least one other record.
	Duration time.Duration `json:"duration,omitempty"`

	Outcome Outcome `json:"decode_outcome"`

	// FailureReason describes why decoding degraded, for outcomes
	// other than clean.
	FailureReason string `json:"failure_reason,omitempty"`

	// Line is the 1-based position of the line in its source.
	Line int `json:"line"`

	// Source is the filename hint the line came from, when known.
	Source string `json:"source,omitempty"`

	// Read marks records a user has already reviewed.
	Read bool `json:"read,omitempty"`
}

// HasDuration reports whether the enricher assigned a group duration.
func (r *Record) HasDuration() bool {
	return r.Duration > 0
}

// Failed reports whether the record is a hard decode failure.
func (r *Record) Failed() bool {
	return r.Outcome == OutcomeFailed
}
