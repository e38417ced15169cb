// Package ritual reconciles sync operations against rituals.
package ritual

import (
	"context"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
)

const entityName = "Ritual"

// Store is the persistence the ritual handlers write to.
type Store interface {
	CreateRitual(ctx context.Context, ownerID string, in types.NewRitual) (*types.Ritual, error)
	UpdateRitual(ctx context.Context, id, ownerID string, patch types.RitualPatch) (*types.Ritual, error)
	SoftDeleteRitual(ctx context.Context, id, ownerID string) error
}

type handler struct {
	store Store
}

// Register installs the ritual create, update and delete handlers.
func Register(r *entity.Registry, s Store) {
	h := &handler{store: s}
	r.Register(entity.KindRitual, entity.OpCreate, h.create)
	r.Register(entity.KindRitual, entity.OpUpdate, h.update)
	r.Register(entity.KindRitual, entity.OpDelete, h.delete)
}

func (h *handler) create(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	in, err := parseCreate(p)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.CreateRitual(ctx, ownerID, in)
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
	rec, err := h.store.UpdateRitual(ctx, in.id, ownerID, in.patch)
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
	if err := h.store.SoftDeleteRitual(ctx, id, ownerID); err != nil {
		return nil, entity.MapNotFound(err, entityName)
	}
	return entity.Deleted(id), nil
}
