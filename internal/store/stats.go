package store

import (
	"context"
	"fmt"
)

// Stats summarizes the stored records for the stats command.
type Stats struct {
	TotalRecords  int            `json:"total_records"`
	DecodeFailed  int            `json:"decode_failed"`
	ByOutcome     map[string]int `json:"by_outcome"`
	ByOperation   map[string]int `json:"by_operation"`
	BySeverity    map[string]int `json:"by_severity"`
	ByResource    map[string]int `json:"by_resource,omitempty"`
	ByRPCMethod   map[string]int `json:"by_rpc_method,omitempty"`
	EmbeddedCount int            `json:"embedded_block_count"`
	SessionCount  int            `json:"session_count"`
}

// ReadStats computes aggregate statistics, optionally scoped to one
// session (empty token means the whole store).
func (s *Store) ReadStats(ctx context.Context, token string) (Stats, error) {
	stats := Stats{
		ByOutcome:   map[string]int{},
		ByOperation: map[string]int{},
		BySeverity:  map[string]int{},
		ByResource:  map[string]int{},
		ByRPCMethod: map[string]int{},
	}

	where := ""
	var args []any
	if token != "" {
		where = " WHERE session = ?"
		args = append(args, token)
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(block_count), 0) FROM records"+where, args...)
	if err := row.Scan(&stats.TotalRecords, &stats.EmbeddedCount); err != nil {
		return Stats{}, fmt.Errorf("stats totals: %w", err)
	}

	counters := []struct {
		column string
		dest   map[string]int
	}{
		{"outcome", stats.ByOutcome},
		{"operation", stats.ByOperation},
		{"severity", stats.BySeverity},
		{"resource_type", stats.ByResource},
		{"rpc_method", stats.ByRPCMethod},
	}
	for _, c := range counters {
		if err := s.countBy(ctx, c.column, where, args, c.dest); err != nil {
			return Stats{}, err
		}
	}
	delete(stats.ByResource, "")
	delete(stats.ByRPCMethod, "")
	stats.DecodeFailed = stats.ByOutcome["failed"]

	row = s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT session) FROM records"+where, args...)
	if err := row.Scan(&stats.SessionCount); err != nil {
		return Stats{}, fmt.Errorf("stats sessions: %w", err)
	}

	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column, where string, args []any, dest map[string]int) error {
	// column comes from the fixed counters table above, never from input.
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM records%s GROUP BY %s", column, where, column)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("stats by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("stats by %s: %w", column, err)
		}
		dest[key] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("stats by %s: %w", column, err)
	}
	return nil
}
