package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. It is meant for tests and
// single instance deployments.
type MemoryStore[Data any] struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session[Data]
	byToken map[string]uuid.UUID
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		byID:    make(map[uuid.UUID]Session[Data]),
		byToken: make(map[string]uuid.UUID),
	}
}

// GetByToken returns a copy of the session holding token.
func (m *MemoryStore[Data]) GetByToken(_ context.Context, token string) (*Session[Data], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	s := m.byID[id]
	return &s, nil
}

// Save inserts or replaces the session, dropping its previous token.
func (m *MemoryStore[Data]) Save(_ context.Context, s *Session[Data]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.byID[s.ID]; ok && prev.Token != s.Token {
		delete(m.byToken, prev.Token)
	}
	m.byID[s.ID] = *s
	m.byToken[s.Token] = s.ID
	return nil
}

// Delete removes the session with id.
func (m *MemoryStore[Data]) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byToken, s.Token)
	delete(m.byID, id)
	return nil
}

// DeleteExpired removes every session past its expiration.
func (m *MemoryStore[Data]) DeleteExpired(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var n int64
	for id, s := range m.byID {
		if now.After(s.ExpiresAt) {
			delete(m.byToken, s.Token)
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}
