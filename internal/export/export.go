// Package export renders decoded records to interchange formats.
//
// Exporters are collaborators of the decode core: they consume its
// output and never influence decoding. All writers stream to an
// io.Writer so exports work equally against stdout and files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/roach88/tfscope/internal/record"
)

// csvMessageLimit bounds message cells so spreadsheet tools stay
// usable against multi-megabyte body dumps.
const csvMessageLimit = 200

// csvHeader is the fixed CSV column set.
var csvHeader = []string{
	"timestamp", "level", "operation", "resource_type", "rpc_method",
	"message", "correlation_id", "provider_address", "outcome",
	"duration_ms", "line", "source",
}

// CSV writes records as CSV with a header row.
func CSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	for _, rec := range records {
		durationMS := ""
		if rec.HasDuration() {
			durationMS = fmt.Sprintf("%d", rec.Duration.Milliseconds())
		}
		row := []string{
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
			string(rec.Severity),
			string(rec.Operation),
			rec.ResourceType,
			rec.RPCMethod,
			truncate(rec.Message, csvMessageLimit),
			rec.CorrelationID,
			rec.ProviderAddr,
			string(rec.Outcome),
			durationMS,
			fmt.Sprintf("%d", rec.Line),
			rec.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// Manifest is the envelope written around a JSON export.
type Manifest struct {
	ExportedAt   time.Time       `json:"exported_at"`
	TotalRecords int             `json:"total_records"`
	Records      []record.Record `json:"records"`
}

// JSON writes records as one indented JSON document with an export
// manifest envelope.
func JSON(w io.Writer, records []record.Record, now time.Time) error {
	manifest := Manifest{
		ExportedAt:   now.UTC(),
		TotalRecords: len(records),
		Records:      records,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// NDJSON writes one JSON object per line, matching the input framing
// the decoder consumes. Suitable for piping into other tools.
func NDJSON(w io.Writer, records []record.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("export ndjson: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
