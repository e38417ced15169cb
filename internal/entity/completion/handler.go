// Package completion reconciles sync operations against ritual completions.
package completion

import (
	"context"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
)

const (
	entityName = "Ritual completion"
	ritualName = "Ritual"
)

// Store is the persistence the completion handlers write to. GetRitual is used
// to check that a new completion references one of the owner's rituals.
type Store interface {
	GetRitual(ctx context.Context, ownerID, id string) (*types.Ritual, error)
	CreateCompletion(ctx context.Context, ownerID string, in types.NewRitualCompletion) (*types.RitualCompletion, error)
	UpdateCompletion(ctx context.Context, id, ownerID string, patch types.CompletionPatch) (*types.RitualCompletion, error)
	SoftDeleteCompletion(ctx context.Context, id, ownerID string) error
}

type handler struct {
	store Store
}

// Register installs the completion create, update and delete handlers.
func Register(r *entity.Registry, s Store) {
	h := &handler{store: s}
	r.Register(entity.KindCompletion, entity.OpCreate, h.create)
	r.Register(entity.KindCompletion, entity.OpUpdate, h.update)
	r.Register(entity.KindCompletion, entity.OpDelete, h.delete)
}

func (h *handler) create(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	in, err := parseCreate(p)
	if err != nil {
		return nil, err
	}
	if _, err := h.store.GetRitual(ctx, ownerID, in.RitualID); err != nil {
		return nil, entity.MapNotFound(err, ritualName)
	}
	rec, err := h.store.CreateCompletion(ctx, ownerID, in)
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
	rec, err := h.store.UpdateCompletion(ctx, in.id, ownerID, in.patch)
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
	if err := h.store.SoftDeleteCompletion(ctx, id, ownerID); err != nil {
		return nil, entity.MapNotFound(err, entityName)
	}
	return entity.Deleted(id), nil
}
