package sync

import (
	"context"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/entity/completion"
	"github.com/hyperengineering/solace/internal/entity/journal"
	"github.com/hyperengineering/solace/internal/entity/mood"
	"github.com/hyperengineering/solace/internal/entity/ritual"
	"github.com/hyperengineering/solace/internal/store"
)

var errMalformed = entity.Invalid("Malformed operation")

// NewStoreRegistry returns a handler table with every entity kind writing to s.
func NewStoreRegistry(s store.Store) *entity.Registry {
	r := entity.NewRegistry()
	mood.Register(r, s)
	journal.Register(r, s)
	ritual.Register(r, s)
	completion.Register(r, s)
	return r
}

// Dispatcher routes a single operation to the handler registered for its
// entity and operation type.
type Dispatcher struct {
	registry *entity.Registry
}

// NewDispatcher creates a Dispatcher over registry.
func NewDispatcher(registry *entity.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch applies op for ownerID and returns the handler's result.
func (d *Dispatcher) Dispatch(ctx context.Context, ownerID string, op Operation) (any, error) {
	if op.malformed {
		return nil, errMalformed
	}

	kind, ok := entity.ParseKind(op.Entity)
	if !ok || !d.registry.Supports(kind) {
		return nil, entity.UnsupportedEntity(op.Entity)
	}

	opKind, ok := entity.ParseOperationKind(op.Type, kind)
	if !ok {
		return nil, entity.UnsupportedOperation(kind, op.Type)
	}
	h, ok := d.registry.Lookup(kind, opKind)
	if !ok {
		return nil, entity.UnsupportedOperation(kind, op.Type)
	}

	return h(ctx, ownerID, op.Data)
}
