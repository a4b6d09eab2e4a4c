package engine

import (
	"slices"

	"github.com/pitfigu/GuardianSurvivor/core"
)

// Store is a generic container for one component type
// Iteration follows insertion order so simulation runs replay identically
type Store[T any] struct {
	components map[core.Entity]T
	entities   []core.Entity
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set inserts or replaces the component for e
func (s *Store[T]) Set(e core.Entity, val T) {
	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// Get retrieves the component for e
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// Remove deletes e, unknown entities are ignored
func (s *Store[T]) Remove(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	if i := slices.Index(s.entities, e); i >= 0 {
		s.entities = slices.Delete(s.entities, i, i+1)
	}
}

// RemoveBatch deletes several entities in one compaction pass
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	removed := false
	for _, e := range entities {
		if _, exists := s.components[e]; exists {
			delete(s.components, e)
			removed = true
		}
	}
	if !removed {
		return
	}
	s.entities = slices.DeleteFunc(s.entities, func(e core.Entity) bool {
		_, keep := s.components[e]
		return !keep
	})
}

func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Entities returns a snapshot of ids, safe to hold across removals
func (s *Store[T]) Entities() []core.Entity {
	return slices.Clone(s.entities)
}

// Each visits components in insertion order over a snapshot of ids
// Entities removed during the walk are skipped
func (s *Store[T]) Each(fn func(e core.Entity, val T)) {
	for _, e := range s.Entities() {
		if val, ok := s.components[e]; ok {
			fn(e, val)
		}
	}
}

func (s *Store[T]) Count() int {
	return len(s.entities)
}
