// Package harness provides the conformance test harness for the decode
// pipeline.
//
// Scenarios are YAML files listing raw input lines plus a source hint
// and a fixed wall-clock instant. The harness decodes the lines with a
// deterministic decoder, builds the timeline, and compares a canonical
// snapshot of the result against golden files.
//
// Golden files are the source of truth for expected pipeline behavior.
// To regenerate them after an intentional change:
//
//	go test ./internal/harness -update
package harness
