package decoder

import (
	"bufio"
	"io"
	"strings"

	"github.com/roach88/tfscope/internal/enrich"
	"github.com/roach88/tfscope/internal/record"
)

// maxLineBytes bounds a single scanned line. Terraform HTTP body dumps
// routinely exceed bufio's 64 KiB default.
const maxLineBytes = 4 * 1024 * 1024

// DecodeBatch decodes an ordered sequence of lines into normalized
// records and runs relationship enrichment over the result.
//
// Blank lines are skipped and yield no record, but numbering still
// reflects the original 1-based position, so ids derived from line
// numbers stay stable regardless of surrounding blanks. Record order
// always matches input line order.
func (d *Decoder) DecodeBatch(lines []string, sourceHint string) []record.Record {
	records := make([]record.Record, 0, len(lines))
	var st State
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec record.Record
		rec, st = d.DecodeLine(st, line, i+1, sourceHint)
		records = append(records, rec)
	}
	enrich.Apply(records)
	return records
}

// DecodeReader is DecodeBatch over a line-delimited stream.
// Returns an error only when reading the stream itself fails; decode
// problems surface as failure records, never as errors.
func (d *Decoder) DecodeReader(r io.Reader, sourceHint string) ([]record.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d.DecodeBatch(lines, sourceHint), nil
}
