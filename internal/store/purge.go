package store

import (
	"context"
	"fmt"
	"time"
)

// PurgeDeleted hard-deletes rows soft-deleted before the cutoff and returns the
// number of rows removed. Rituals that still have completions are kept.
func (s *SQLiteStore) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	cutoff := formatTime(before)

	statements := []struct {
		table string
		query string
	}{
		{"ritual_completions", `DELETE FROM ritual_completions WHERE deleted_at IS NOT NULL AND deleted_at < ?`},
		{"mood_entries", `DELETE FROM mood_entries WHERE deleted_at IS NOT NULL AND deleted_at < ?`},
		{"journal_entries", `DELETE FROM journal_entries WHERE deleted_at IS NOT NULL AND deleted_at < ?`},
		{"rituals", `DELETE FROM rituals WHERE deleted_at IS NOT NULL AND deleted_at < ?
			AND id NOT IN (SELECT ritual_id FROM ritual_completions)`},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, st := range statements {
		result, err := tx.ExecContext(ctx, st.query, cutoff)
		if err != nil {
			return 0, fmt.Errorf("purge %s: %w", st.table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("get rows affected: %w", err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return total, nil
}
