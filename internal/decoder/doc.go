// Package decoder implements the cascading decode state machine that
// turns raw log lines into normalized records.
//
// Every non-blank input line yields exactly one record. The cascade is
// a strictly ordered fallback chain, first success wins:
//
//  1. Strict JSON parse of the line (outcome: clean)
//  2. Structural repair and re-parse (outcome: repaired)
//  3. Regex extraction of high-value fields (outcome: extracted)
//  4. Synthesized failure record (outcome: failed)
//
// Each stage is a pure function over the line; failures advance to the
// next stage with no partial state. Repaired and extracted lines run
// through the same field inference as clean ones.
//
// No error escapes the decoder for a single line: a panic anywhere in
// the cascade degrades that line to a failure record, never aborting
// the batch.
//
// Timestamp carry-forward is explicit state threaded through the batch
// loop, not ambient decoder state: a line with no derivable timestamp
// inherits the most recent derived timestamp in the batch, falling back
// to wall clock only when no line has produced one yet.
package decoder
