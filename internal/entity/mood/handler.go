// Package mood reconciles sync operations against mood entries.
package mood

import (
	"context"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
)

const entityName = "Mood entry"

// Store is the persistence the mood handlers write to.
type Store interface {
	CreateMood(ctx context.Context, ownerID string, in types.NewMoodEntry) (*types.MoodEntry, error)
	UpdateMood(ctx context.Context, id, ownerID string, patch types.MoodPatch) (*types.MoodEntry, error)
	SoftDeleteMood(ctx context.Context, id, ownerID string) error
}

type handler struct {
	store Store
}

// Register installs the mood create, update and delete handlers.
func Register(r *entity.Registry, s Store) {
	h := &handler{store: s}
	r.Register(entity.KindMood, entity.OpCreate, h.create)
	r.Register(entity.KindMood, entity.OpUpdate, h.update)
	r.Register(entity.KindMood, entity.OpDelete, h.delete)
}

func (h *handler) create(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	in, err := parseCreate(p)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.CreateMood(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *handler) update(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	in, err := parseUpdate(p)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.UpdateMood(ctx, in.id, ownerID, in.patch)
	if err != nil {
		return nil, entity.MapNotFound(err, entityName)
	}
	return rec, nil
}

func (h *handler) delete(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	id, err := parseDelete(p)
	if err != nil {
		return nil, err
	}
	if err := h.store.SoftDeleteMood(ctx, id, ownerID); err != nil {
		return nil, entity.MapNotFound(err, entityName)
	}
	return entity.Deleted(id), nil
}
