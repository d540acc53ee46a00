// Package registry orders parser descriptors. Each descriptor may ask to run
// before or after other descriptors by ID; Resolve turns those hints into a
// single deterministic order.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrDuplicate is returned when two descriptors share an ID.
	ErrDuplicate = errors.New("registry: duplicate descriptor id")

	// ErrCycle is returned when ordering hints cannot be satisfied.
	ErrCycle = errors.New("registry: ordering cycle")

	// ErrEmptyID is returned when a descriptor has no ID.
	ErrEmptyID = errors.New("registry: empty descriptor id")
)

// Descriptor identifies one parser and its ordering hints.
type Descriptor[F any] struct {
	// ID is the stable identifier other descriptors refer to.
	ID string

	// Before lists IDs this descriptor must run ahead of.
	Before []string

	// After lists IDs this descriptor must run behind.
	After []string

	// Parse is the parser function.
	Parse F
}

// Registry collects descriptors until Resolve is called.
type Registry[F any] struct {
	mu    sync.RWMutex
	items []Descriptor[F]
	index map[string]int
}

// New creates an empty registry.
func New[F any]() *Registry[F] {
	return &Registry[F]{index: make(map[string]int)}
}

// Register adds a descriptor. Registration order breaks ties between
// descriptors whose hints do not order them.
func (r *Registry[F]) Register(desc Descriptor[F]) error {
	if desc.ID == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[desc.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, desc.ID)
	}

	r.index[desc.ID] = len(r.items)
	r.items = append(r.items, desc)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[F]) MustRegister(descs ...Descriptor[F]) {
	for _, desc := range descs {
		if err := r.Register(desc); err != nil {
			panic(err)
		}
	}
}

// Remove drops the descriptor with the given ID, reporting whether it existed.
// Hints that name a removed ID are ignored by Resolve.
func (r *Registry[F]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return false
	}

	r.items = slices.Delete(r.items, pos, pos+1)
	delete(r.index, id)

	for i := pos; i < len(r.items); i++ {
		r.index[r.items[i].ID] = i
	}

	return true
}

// Len returns the number of registered descriptors.
func (r *Registry[F]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Has reports whether id is registered.
func (r *Registry[F]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok
}

// CycleError names the descriptors left unordered by a cycle.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.IDs, ", "))
}

// Unwrap allows errors.Is(err, ErrCycle).
func (e *CycleError) Unwrap() error {
	return ErrCycle
}
