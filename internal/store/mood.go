package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hyperengineering/solace/internal/types"
)

var moodSchema = TableSchema{
	Name: "mood_entries",
	Columns: []string{
		"id", "owner_id", "mood", "context", "note", "intensity", "tags", "factors",
		"recorded_at", "created_at", "updated_at", "deleted_at",
	},
}

// CreateMood inserts a mood entry owned by ownerID with a server-assigned id.
func (s *SQLiteStore) CreateMood(ctx context.Context, ownerID string, in types.NewMoodEntry) (*types.MoodEntry, error) {
	tags, err := encodeList(in.Tags)
	if err != nil {
		return nil, err
	}
	factors, err := encodeList(in.Factors)
	if err != nil {
		return nil, err
	}

	now := s.stamp()
	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.now()
	}

	row, err := scanMood(s.db.QueryRowContext(ctx, `
		INSERT INTO mood_entries (
			id, owner_id, mood, context, note, intensity, tags, factors,
			recorded_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+moodSchema.projection(),
		s.newID(), ownerID, string(in.Mood), string(in.Context), in.Note, nullableInt(in.Intensity),
		tags, factors, formatTime(recordedAt), now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert mood entry: %w", err)
	}
	return row, nil
}

// UpdateMood applies the non-nil fields of patch to the owner's mood entry.
func (s *SQLiteStore) UpdateMood(ctx context.Context, id, ownerID string, patch types.MoodPatch) (*types.MoodEntry, error) {
	var sets []assignment
	if patch.Mood != nil {
		sets = append(sets, assignment{"mood", string(*patch.Mood)})
	}
	if patch.Context != nil {
		sets = append(sets, assignment{"context", string(*patch.Context)})
	}
	if patch.Note != nil {
		sets = append(sets, assignment{"note", *patch.Note})
	}
	if patch.Intensity != nil {
		sets = append(sets, assignment{"intensity", *patch.Intensity})
	}
	if patch.Tags != nil {
		tags, err := encodeList(*patch.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"tags", tags})
	}
	if patch.Factors != nil {
		factors, err := encodeList(*patch.Factors)
		if err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"factors", factors})
	}
	if patch.RecordedAt != nil {
		sets = append(sets, assignment{"recorded_at", formatTime(*patch.RecordedAt)})
	}

	return updateOwned(ctx, s.db, moodSchema, id, ownerID, s.stamp(), sets, scanMood)
}

// SoftDeleteMood marks the owner's mood entry deleted.
func (s *SQLiteStore) SoftDeleteMood(ctx context.Context, id, ownerID string) error {
	return softDeleteOwned(ctx, s.db, moodSchema, id, ownerID, s.stamp())
}

// GetMood returns an active mood entry of ownerID.
func (s *SQLiteStore) GetMood(ctx context.Context, ownerID, id string) (*types.MoodEntry, error) {
	return getOwned(ctx, s.db, moodSchema, id, ownerID, scanMood)
}

// ListMoods returns the owner's active mood entries, newest first.
func (s *SQLiteStore) ListMoods(ctx context.Context, ownerID string) ([]types.MoodEntry, error) {
	return listOwned(ctx, s.db, moodSchema, ownerID, "recorded_at DESC, id DESC", scanMood)
}

func scanMood(scanner rowScanner) (*types.MoodEntry, error) {
	var e types.MoodEntry
	var mood, moodContext, tags, factors string
	var recordedAt, createdAt, updatedAt string
	var intensity sql.NullInt64
	var deletedAt sql.NullString

	if err := scanner.Scan(
		&e.ID, &e.OwnerID, &mood, &moodContext, &e.Note, &intensity, &tags, &factors,
		&recordedAt, &createdAt, &updatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}

	e.Mood = types.Mood(mood)
	e.Context = types.MoodContext(moodContext)
	if intensity.Valid {
		v := int(intensity.Int64)
		e.Intensity = &v
	}

	var err error
	if e.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	if e.Factors, err = decodeList(factors); err != nil {
		return nil, err
	}
	if e.RecordedAt, err = parseTime(recordedAt); err != nil {
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
