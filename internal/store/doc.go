// Package store provides durable SQLite storage for decoded record
// batches.
//
// The store is a collaborator of the decode core, not part of it: the
// pipeline is a pure transformation and the store only receives its
// output. Each ingested file is one session; records within a session
// keep their original line order.
//
// Write discipline is append-only with a single writer at a time.
// Writes are idempotent on record id (ON CONFLICT DO NOTHING), so
// re-ingesting identical input is harmless: the deterministic record
// ids collapse duplicates.
//
// All reads use deterministic ordering: ORDER BY session, line, id.
package store
