package memstore

import (
	"sort"
	"sync"

	"github.com/go-mail-verify/internal/domain"
)

// ConfirmedRegistry tracks which identities have completed email
// confirmation. Membership is volatile, process-lifetime only.
type ConfirmedRegistry struct {
	mu        sync.RWMutex
	confirmed map[string]struct{}
}

func NewConfirmedRegistry() *ConfirmedRegistry {
	return &ConfirmedRegistry{confirmed: make(map[string]struct{})}
}

// MarkConfirmed inserts the normalized identity. Idempotent.
func (r *ConfirmedRegistry) MarkConfirmed(identity string) {
	key := domain.NormalizeIdentity(identity)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmed[key] = struct{}{}
}

// IsConfirmed reports membership for the normalized identity.
func (r *ConfirmedRegistry) IsConfirmed(identity string) bool {
	key := domain.NormalizeIdentity(identity)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.confirmed[key]
	return ok
}

// Remove deletes the identity from the confirmed set and reports whether it
// was present. Not part of the flow contract; kept for administrative use.
func (r *ConfirmedRegistry) Remove(identity string) bool {
	key := domain.NormalizeIdentity(identity)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.confirmed[key]
	delete(r.confirmed, key)
	return ok
}

// List returns the confirmed identities in sorted order.
func (r *ConfirmedRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.confirmed))
	for id := range r.confirmed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
