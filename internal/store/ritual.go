package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hyperengineering/solace/internal/types"
)

var ritualSchema = TableSchema{
	Name: "rituals",
	Columns: []string{
		"id", "owner_id", "name", "description", "frequency", "reminder_time", "is_active",
		"created_at", "updated_at", "deleted_at",
	},
}

var completionSchema = TableSchema{
	Name: "ritual_completions",
	Columns: []string{
		"id", "owner_id", "ritual_id", "completed_at", "note",
		"created_at", "updated_at", "deleted_at",
	},
}

// CreateRitual inserts a ritual owned by ownerID with a server-assigned id.
func (s *SQLiteStore) CreateRitual(ctx context.Context, ownerID string, in types.NewRitual) (*types.Ritual, error) {
	now := s.stamp()
	row, err := scanRitual(s.db.QueryRowContext(ctx, `
		INSERT INTO rituals (
			id, owner_id, name, description, frequency, reminder_time, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+ritualSchema.projection(),
		s.newID(), ownerID, in.Name, in.Description, string(in.Frequency),
		nullableString(in.ReminderTime), in.IsActive, now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert ritual: %w", err)
	}
	return row, nil
}

// UpdateRitual applies the non-nil fields of patch to the owner's ritual.
func (s *SQLiteStore) UpdateRitual(ctx context.Context, id, ownerID string, patch types.RitualPatch) (*types.Ritual, error) {
	var sets []assignment
	if patch.Name != nil {
		sets = append(sets, assignment{"name", *patch.Name})
	}
	if patch.Description != nil {
		sets = append(sets, assignment{"description", *patch.Description})
	}
	if patch.Frequency != nil {
		sets = append(sets, assignment{"frequency", string(*patch.Frequency)})
	}
	if patch.ReminderTime != nil {
		sets = append(sets, assignment{"reminder_time", *patch.ReminderTime})
	}
	if patch.IsActive != nil {
		sets = append(sets, assignment{"is_active", *patch.IsActive})
	}

	return updateOwned(ctx, s.db, ritualSchema, id, ownerID, s.stamp(), sets, scanRitual)
}

// SoftDeleteRitual marks the owner's ritual deleted. Its completions are kept.
func (s *SQLiteStore) SoftDeleteRitual(ctx context.Context, id, ownerID string) error {
	return softDeleteOwned(ctx, s.db, ritualSchema, id, ownerID, s.stamp())
}

// GetRitual returns an active ritual of ownerID.
func (s *SQLiteStore) GetRitual(ctx context.Context, ownerID, id string) (*types.Ritual, error) {
	return getOwned(ctx, s.db, ritualSchema, id, ownerID, scanRitual)
}

// ListRituals returns the owner's active rituals in creation order.
func (s *SQLiteStore) ListRituals(ctx context.Context, ownerID string) ([]types.Ritual, error) {
	return listOwned(ctx, s.db, ritualSchema, ownerID, "created_at ASC, id ASC", scanRitual)
}

// CreateCompletion inserts a completion of one of the owner's rituals.
func (s *SQLiteStore) CreateCompletion(ctx context.Context, ownerID string, in types.NewRitualCompletion) (*types.RitualCompletion, error) {
	now := s.stamp()
	completedAt := in.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	row, err := scanCompletion(s.db.QueryRowContext(ctx, `
		INSERT INTO ritual_completions (
			id, owner_id, ritual_id, completed_at, note, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+completionSchema.projection(),
		s.newID(), ownerID, in.RitualID, formatTime(completedAt), in.Note, now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert ritual completion: %w", err)
	}
	return row, nil
}

// UpdateCompletion applies the non-nil fields of patch to the owner's completion.
func (s *SQLiteStore) UpdateCompletion(ctx context.Context, id, ownerID string, patch types.CompletionPatch) (*types.RitualCompletion, error) {
	var sets []assignment
	if patch.CompletedAt != nil {
		sets = append(sets, assignment{"completed_at", formatTime(*patch.CompletedAt)})
	}
	if patch.Note != nil {
		sets = append(sets, assignment{"note", *patch.Note})
	}

	return updateOwned(ctx, s.db, completionSchema, id, ownerID, s.stamp(), sets, scanCompletion)
}

// SoftDeleteCompletion marks the owner's completion deleted.
func (s *SQLiteStore) SoftDeleteCompletion(ctx context.Context, id, ownerID string) error {
	return softDeleteOwned(ctx, s.db, completionSchema, id, ownerID, s.stamp())
}

// GetCompletion returns an active completion of ownerID.
func (s *SQLiteStore) GetCompletion(ctx context.Context, ownerID, id string) (*types.RitualCompletion, error) {
	return getOwned(ctx, s.db, completionSchema, id, ownerID, scanCompletion)
}

// ListCompletions returns the owner's active completions, newest first.
func (s *SQLiteStore) ListCompletions(ctx context.Context, ownerID string) ([]types.RitualCompletion, error) {
	return listOwned(ctx, s.db, completionSchema, ownerID, "completed_at DESC, id DESC", scanCompletion)
}

func scanRitual(scanner rowScanner) (*types.Ritual, error) {
	var r types.Ritual
	var frequency, createdAt, updatedAt string
	var reminderTime, deletedAt sql.NullString

	if err := scanner.Scan(
		&r.ID, &r.OwnerID, &r.Name, &r.Description, &frequency, &reminderTime, &r.IsActive,
		&createdAt, &updatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}

	r.Frequency = types.RitualFrequency(frequency)
	if reminderTime.Valid {
		v := reminderTime.String
		r.ReminderTime = &v
	}

	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if r.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanCompletion(scanner rowScanner) (*types.RitualCompletion, error) {
	var c types.RitualCompletion
	var completedAt, createdAt, updatedAt string
	var deletedAt sql.NullString

	if err := scanner.Scan(
		&c.ID, &c.OwnerID, &c.RitualID, &completedAt, &c.Note,
		&createdAt, &updatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if c.CompletedAt, err = parseTime(completedAt); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if c.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
