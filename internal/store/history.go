package store

import (
	"fmt"
	"time"
)

// RecordReset stores one snapshot row per role for the period ending at.
// day is the local date the snapshot belongs to.
func (s *Store) RecordReset(at time.Time, day string, snaps []RoleSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history: %w", err)
	}
	defer tx.Rollback()

	stamp := at.UTC().Format(time.RFC3339)
	for _, snap := range snaps {
		_, err := tx.Exec(
			`INSERT INTO reset_history (reset_at, day, role, completed, total) VALUES (?, ?, ?, ?, ?)`,
			stamp, day, snap.Role, snap.Completed, snap.Total,
		)
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}
	return tx.Commit()
}

// ListHistory returns snapshots whose day falls in [from, to), oldest first.
// Empty bounds are unbounded.
func (s *Store) ListHistory(from, to string) ([]DaySummary, error) {
	query := `SELECT reset_at, day, role, completed, total FROM reset_history WHERE 1=1`
	var args []any
	if from != "" {
		query += ` AND day >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND day < ?`
		args = append(args, to)
	}
	query += ` ORDER BY day, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []DaySummary
	for rows.Next() {
		var d DaySummary
		var resetAt string
		if err := rows.Scan(&resetAt, &d.Day, &d.Role, &d.Completed, &d.Total); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, resetAt)
		if err != nil {
			return nil, fmt.Errorf("parse reset_at %q: %w", resetAt, err)
		}
		d.ResetAt = at
		out = append(out, d)
	}
	return out, rows.Err()
}
