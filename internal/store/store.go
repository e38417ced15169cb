package store

import (
	"context"
	"time"

	"github.com/hyperengineering/solace/internal/types"
)

// Store defines the persistence contract for every entity the sync engine writes.
// All mutations are scoped to an owner; reads never return soft-deleted rows.
type Store interface {
	CreateMood(ctx context.Context, ownerID string, in types.NewMoodEntry) (*types.MoodEntry, error)
	UpdateMood(ctx context.Context, id, ownerID string, patch types.MoodPatch) (*types.MoodEntry, error)
	SoftDeleteMood(ctx context.Context, id, ownerID string) error
	GetMood(ctx context.Context, ownerID, id string) (*types.MoodEntry, error)
	ListMoods(ctx context.Context, ownerID string) ([]types.MoodEntry, error)

	CreateJournal(ctx context.Context, ownerID string, in types.NewJournalEntry) (*types.JournalEntry, error)
	UpdateJournal(ctx context.Context, id, ownerID string, patch types.JournalPatch) (*types.JournalEntry, error)
	SoftDeleteJournal(ctx context.Context, id, ownerID string) error
	GetJournal(ctx context.Context, ownerID, id string) (*types.JournalEntry, error)
	ListJournals(ctx context.Context, ownerID string) ([]types.JournalEntry, error)

	CreateRitual(ctx context.Context, ownerID string, in types.NewRitual) (*types.Ritual, error)
	UpdateRitual(ctx context.Context, id, ownerID string, patch types.RitualPatch) (*types.Ritual, error)
	SoftDeleteRitual(ctx context.Context, id, ownerID string) error
	GetRitual(ctx context.Context, ownerID, id string) (*types.Ritual, error)
	ListRituals(ctx context.Context, ownerID string) ([]types.Ritual, error)

	CreateCompletion(ctx context.Context, ownerID string, in types.NewRitualCompletion) (*types.RitualCompletion, error)
	UpdateCompletion(ctx context.Context, id, ownerID string, patch types.CompletionPatch) (*types.RitualCompletion, error)
	SoftDeleteCompletion(ctx context.Context, id, ownerID string) error
	GetCompletion(ctx context.Context, ownerID, id string) (*types.RitualCompletion, error)
	ListCompletions(ctx context.Context, ownerID string) ([]types.RitualCompletion, error)

	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
