package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/tfscope/internal/record"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Session      string
	Operation    record.Operation
	Severity     record.Severity
	ResourceType string

	// Search matches a substring (case-insensitive) against message,
	// rpc method, and resource type.
	Search string

	// HideRead excludes records already marked read.
	HideRead bool

	// HideFailed excludes hard decode failures.
	HideFailed bool

	// Limit bounds the result set; 0 means unlimited.
	Limit int
}

// recordColumns is the canonical SELECT column list for scanRecord.
const recordColumns = `
	id, session, source, line, timestamp, severity, message, module,
	correlation_id, resource_type, data_source_type, rpc_method,
	provider_address, operation, raw_fields, blocks, duration_ns,
	outcome, failure_reason, read_flag`

// List returns records matching the filter, ordered deterministically
// by (session, line, id).
func (s *Store) List(ctx context.Context, f Filter) ([]record.Record, error) {
	var conds []string
	var args []any

	if f.Session != "" {
		conds = append(conds, "session = ?")
		args = append(args, f.Session)
	}
	if f.Operation != "" {
		conds = append(conds, "operation = ?")
		args = append(args, string(f.Operation))
	}
	if f.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, string(f.Severity))
	}
	if f.ResourceType != "" {
		conds = append(conds, "resource_type = ?")
		args = append(args, f.ResourceType)
	}
	if f.Search != "" {
		conds = append(conds, "(message LIKE ? OR rpc_method LIKE ? OR resource_type LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if f.HideRead {
		conds = append(conds, "read_flag = 0")
	}
	if f.HideFailed {
		conds = append(conds, "outcome != ?")
		args = append(args, string(record.OutcomeFailed))
	}

	query := "SELECT" + recordColumns + " FROM records"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY session ASC, line ASC, id COLLATE BINARY ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ReadSession returns all records of one session in line order.
func (s *Store) ReadSession(ctx context.Context, token string) ([]record.Record, error) {
	return s.List(ctx, Filter{Session: token})
}

// SessionInfo describes one ingest session.
type SessionInfo struct {
	Token       string    `json:"token"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	RecordCount int       `json:"record_count"`
}

// Sessions lists ingest sessions, newest first.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.token, s.source, s.created_at, COUNT(r.id)
		FROM sessions s
		LEFT JOIN records r ON r.session = s.token
		GROUP BY s.token, s.source, s.created_at
		ORDER BY s.created_at DESC, s.token DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		var createdAt string
		if err := rows.Scan(&info.Token, &info.Source, &createdAt, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ts, err := unmarshalTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.CreatedAt = ts
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func collectRecords(rows *sql.Rows) ([]record.Record, error) {
	records := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (record.Record, error) {
	var (
		rec        record.Record
		session    string
		timestamp  string
		severity   string
		operation  string
		rawJSON    string
		blocksJSON string
		durationNs int64
		outcome    string
		readFlag   int
	)

	if err := rows.Scan(
		&rec.ID, &session, &rec.Source, &rec.Line, &timestamp, &severity,
		&rec.Message, &rec.Module, &rec.CorrelationID, &rec.ResourceType,
		&rec.DataSourceType, &rec.RPCMethod, &rec.ProviderAddr, &operation,
		&rawJSON, &blocksJSON, &durationNs, &outcome, &rec.FailureReason,
		&readFlag,
	); err != nil {
		return record.Record{}, fmt.Errorf("scan record: %w", err)
	}

	ts, err := unmarshalTimestamp(timestamp)
	if err != nil {
		return record.Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rawFields, err := unmarshalRawFields(rawJSON)
	if err != nil {
		return record.Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	blocks, err := unmarshalBlocks(blocksJSON)
	if err != nil {
		return record.Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	rec.Timestamp = ts
	rec.Severity = record.Severity(severity)
	rec.Operation = record.Operation(operation)
	rec.RawFields = rawFields
	rec.Blocks = blocks
	rec.Duration = time.Duration(durationNs)
	rec.Outcome = record.Outcome(outcome)
	rec.Read = readFlag != 0
	return rec, nil
}
