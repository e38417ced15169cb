package entity

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// HandlerFunc applies one normalized operation for ownerID and returns the
// record (or DeleteAck) to report back to the client.
type HandlerFunc func(ctx context.Context, ownerID string, p Payload) (any, error)

// Key addresses one handler in the table.
type Key struct {
	Kind Kind
	Op   OperationKind
}

// Registry is the dispatch table from (kind, operation) to handler.
// Handlers are registered at startup; lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Key]HandlerFunc
}

// NewRegistry returns an empty handler table.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Key]HandlerFunc)}
}

// Register installs h for (kind, op).
// Panics if a handler for the same key is already registered.
func (r *Registry) Register(kind Kind, op OperationKind, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key{Kind: kind, Op: op}
	if _, exists := r.handlers[key]; exists {
		panic(fmt.Sprintf("sync handler already registered: %s/%s", kind, op))
	}
	r.handlers[key] = h
}

// Lookup returns the handler for (kind, op).
func (r *Registry) Lookup(kind Kind, op OperationKind) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[Key{Kind: kind, Op: op}]
	return h, ok
}

// Supports reports whether any handler is registered for kind.
func (r *Registry) Supports(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key := range r.handlers {
		if key.Kind == kind {
			return true
		}
	}
	return false
}

// Kinds returns the registered entity kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Kind]bool)
	for key := range r.handlers {
		seen[key.Kind] = true
	}
	kinds := make([]Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
