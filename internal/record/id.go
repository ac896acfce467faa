package record

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed record identity.
// Version suffix enables future algorithm migration.
const domainRecord = "tfscope/record/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) []byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return h.Sum(nil)
}

// ID computes the deterministic identity for a record decoded from the
// given line. The inputs are the best-effort timestamp, the 1-based
// line number, and the original line text.
//
// The line text is NFC-normalized before hashing so that equivalent
// Unicode spellings of the same content produce the same ID. The
// rendered form is "<unix>-<line>-<hash8>": sortable by time, unique
// within a batch via the line number, and content-addressed via the
// truncated hash.
func ID(ts time.Time, line int, text string) string {
	var buf []byte
	buf = binary.BigEndian.AppendUint64(buf, uint64(ts.UnixNano()))
	buf = binary.BigEndian.AppendUint64(buf, uint64(line))
	buf = append(buf, norm.NFC.Bytes([]byte(text))...)

	sum := hashWithDomain(domainRecord, buf)
	return fmt.Sprintf("%d-%d-%s", ts.Unix(), line, hex.EncodeToString(sum[:4]))
}
