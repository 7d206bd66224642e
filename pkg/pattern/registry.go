package pattern

import (
	"errors"
	"sort"
	"sync"
)

// ErrBadIndex is returned for pattern indices outside the registry.
var ErrBadIndex = errors.New("pattern: index out of range")

// Factory creates fresh pattern instances. The compositor instantiates a
// new pattern for every spawned layer rather than reusing one.
type Factory struct {
	Name string
	New  func() Pattern
}

// Registry is an ordered collection of available pattern factories plus a
// subset marked "in pool" for automatic selection. Toggling pool membership
// never touches layers that are already active; the compositor owns those.
type Registry struct {
	mu        sync.RWMutex
	factories []Factory
	inPool    map[int]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{inPool: make(map[int]bool)}
}

// Register appends a factory and marks it in-pool by default.
// Returns the new factory's index.
func (r *Registry) Register(f Factory) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, f)
	idx := len(r.factories) - 1
	r.inPool[idx] = true
	return idx
}

// Count returns the number of registered factories.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Names returns the factory names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.factories))
	for i, f := range r.factories {
		names[i] = f.Name
	}
	return names
}

// Instantiate creates a fresh instance of the pattern at idx.
func (r *Registry) Instantiate(idx int) (Pattern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx < 0 || idx >= len(r.factories) {
		return nil, ErrBadIndex
	}
	return r.factories[idx].New(), nil
}

// SetInPool marks or unmarks a pattern for automatic spawn selection.
func (r *Registry) SetInPool(idx int, in bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx < 0 || idx >= len(r.factories) {
		return ErrBadIndex
	}
	if in {
		r.inPool[idx] = true
	} else {
		delete(r.inPool, idx)
	}
	return nil
}

// InPool reports whether a pattern is eligible for automatic spawning.
func (r *Registry) InPool(idx int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inPool[idx]
}

// Pool returns the in-pool indices in ascending order.
func (r *Registry) Pool() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pool := make([]int, 0, len(r.inPool))
	for idx := range r.inPool {
		pool = append(pool, idx)
	}
	sort.Ints(pool)
	return pool
}
