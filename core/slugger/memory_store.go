package slugger

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]Entity
	bySlug map[string]string // slug -> id
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]Entity),
		bySlug: make(map[string]string),
	}
}

// Exists reports whether slug is held by an entity other than excludeID.
func (s *MemoryStore) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	return ok && id != excludeID, nil
}

// Get returns the entity stored under id, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (Entity, error) {
	if err := ctx.Err(); err != nil {
		return Entity{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return Entity{}, ErrNotFound
	}
	return e, nil
}

// Put inserts or replaces e and releases its previous slug. It returns
// ErrConflict when another entity already holds e.Slug.
func (s *MemoryStore) Put(ctx context.Context, e Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if holder, ok := s.bySlug[e.Slug]; ok && holder != e.ID {
		return ErrConflict
	}
	if prev, ok := s.byID[e.ID]; ok && prev.Slug != e.Slug {
		delete(s.bySlug, prev.Slug)
	}
	s.byID[e.ID] = e
	s.bySlug[e.Slug] = e.ID
	return nil
}

// Len returns the number of stored entities.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
