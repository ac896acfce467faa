package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/tfscope/internal/record"
)

// WriteBatch inserts a decoded batch under the given session token in
// one transaction. Uses ON CONFLICT(id) DO NOTHING for idempotency:
// deterministic record ids collapse duplicate ingests of identical
// input. Returns the number of records actually inserted.
func (s *Store) WriteBatch(ctx context.Context, token, source string, records []record.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write batch: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (token, source, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, source, marshalTimestamp(time.Now())); err != nil {
		return 0, fmt.Errorf("write batch: session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records
		(id, session, source, line, timestamp, severity, message, module,
		 correlation_id, resource_type, data_source_type, rpc_method,
		 provider_address, operation, raw_fields, blocks, block_count,
		 duration_ns, outcome, failure_reason, read_flag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("write batch: prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		rawJSON, err := marshalRawFields(rec.RawFields)
		if err != nil {
			return 0, fmt.Errorf("write batch: record %s: %w", rec.ID, err)
		}
		blocksJSON, err := marshalBlocks(rec.Blocks)
		if err != nil {
			return 0, fmt.Errorf("write batch: record %s: %w", rec.ID, err)
		}

		res, err := stmt.ExecContext(ctx,
			rec.ID,
			token,
			rec.Source,
			rec.Line,
			marshalTimestamp(rec.Timestamp),
			string(rec.Severity),
			rec.Message,
			rec.Module,
			rec.CorrelationID,
			rec.ResourceType,
			rec.DataSourceType,
			rec.RPCMethod,
			rec.ProviderAddr,
			string(rec.Operation),
			rawJSON,
			blocksJSON,
			len(rec.Blocks),
			int64(rec.Duration),
			string(rec.Outcome),
			rec.FailureReason,
			boolToInt(rec.Read),
		)
		if err != nil {
			return 0, fmt.Errorf("write batch: record %s: %w", rec.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write batch: commit: %w", err)
	}
	return inserted, nil
}

// MarkRead sets the read flag on a record. Returns false when no
// record has the given id.
func (s *Store) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE records SET read_flag = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	return n > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
