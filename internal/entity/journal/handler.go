// Package journal reconciles sync operations against journal entries.
package journal

import (
	"context"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
)

const entityName = "Journal entry"

// Store is the persistence the journal handlers write to.
type Store interface {
	CreateJournal(ctx context.Context, ownerID string, in types.NewJournalEntry) (*types.JournalEntry, error)
	UpdateJournal(ctx context.Context, id, ownerID string, patch types.JournalPatch) (*types.JournalEntry, error)
	SoftDeleteJournal(ctx context.Context, id, ownerID string) error
}

type handler struct {
	store Store
}

// Register installs the journal create, update and delete handlers.
func Register(r *entity.Registry, s Store) {
	h := &handler{store: s}
	r.Register(entity.KindJournal, entity.OpCreate, h.create)
	r.Register(entity.KindJournal, entity.OpUpdate, h.update)
	r.Register(entity.KindJournal, entity.OpDelete, h.delete)
}

func (h *handler) create(ctx context.Context, ownerID string, p entity.Payload) (any, error) {
	in, err := parseCreate(p)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.CreateJournal(ctx, ownerID, in)
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
	rec, err := h.store.UpdateJournal(ctx, in.id, ownerID, in.patch)
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
	if err := h.store.SoftDeleteJournal(ctx, id, ownerID); err != nil {
		return nil, entity.MapNotFound(err, entityName)
	}
	return entity.Deleted(id), nil
}
