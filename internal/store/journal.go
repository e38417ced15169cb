package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hyperengineering/solace/internal/types"
)

var journalSchema = TableSchema{
	Name: "journal_entries",
	Columns: []string{
		"id", "owner_id", "title", "content", "mood", "tags", "is_locked",
		"created_at", "updated_at", "deleted_at",
	},
}

// CreateJournal inserts a journal entry owned by ownerID with a server-assigned id.
func (s *SQLiteStore) CreateJournal(ctx context.Context, ownerID string, in types.NewJournalEntry) (*types.JournalEntry, error) {
	tags, err := encodeList(in.Tags)
	if err != nil {
		return nil, err
	}

	var mood any
	if in.Mood != nil {
		mood = string(*in.Mood)
	}

	now := s.stamp()
	row, err := scanJournal(s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (
			id, owner_id, title, content, mood, tags, is_locked, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+journalSchema.projection(),
		s.newID(), ownerID, in.Title, in.Content, mood, tags, in.IsLocked, now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return row, nil
}

// UpdateJournal applies the non-nil fields of patch to the owner's journal entry.
func (s *SQLiteStore) UpdateJournal(ctx context.Context, id, ownerID string, patch types.JournalPatch) (*types.JournalEntry, error) {
	var sets []assignment
	if patch.Title != nil {
		sets = append(sets, assignment{"title", *patch.Title})
	}
	if patch.Content != nil {
		sets = append(sets, assignment{"content", *patch.Content})
	}
	if patch.Mood != nil {
		sets = append(sets, assignment{"mood", string(*patch.Mood)})
	}
	if patch.Tags != nil {
		tags, err := encodeList(*patch.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"tags", tags})
	}
	if patch.IsLocked != nil {
		sets = append(sets, assignment{"is_locked", *patch.IsLocked})
	}

	return updateOwned(ctx, s.db, journalSchema, id, ownerID, s.stamp(), sets, scanJournal)
}

// SoftDeleteJournal marks the owner's journal entry deleted.
func (s *SQLiteStore) SoftDeleteJournal(ctx context.Context, id, ownerID string) error {
	return softDeleteOwned(ctx, s.db, journalSchema, id, ownerID, s.stamp())
}

// GetJournal returns an active journal entry of ownerID.
func (s *SQLiteStore) GetJournal(ctx context.Context, ownerID, id string) (*types.JournalEntry, error) {
	return getOwned(ctx, s.db, journalSchema, id, ownerID, scanJournal)
}

// ListJournals returns the owner's active journal entries, newest first.
func (s *SQLiteStore) ListJournals(ctx context.Context, ownerID string) ([]types.JournalEntry, error) {
	return listOwned(ctx, s.db, journalSchema, ownerID, "created_at DESC, id DESC", scanJournal)
}

func scanJournal(scanner rowScanner) (*types.JournalEntry, error) {
	var e types.JournalEntry
	var mood, deletedAt sql.NullString
	var tags, createdAt, updatedAt string

	if err := scanner.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Content, &mood, &tags, &e.IsLocked,
		&createdAt, &updatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}

	if mood.Valid {
		m := types.Mood(mood.String)
		e.Mood = &m
	}

	var err error
	if e.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if e.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
