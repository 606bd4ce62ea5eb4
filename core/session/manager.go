package session

import (
	"context"
	"errors"
	"time"
)

// Manager handles session creation, lookup and persistence.
type Manager[Data any] struct {
	store Store[Data]
	cfg   Config
}

// NewManager creates a session manager backed by store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	if store == nil {
		panic("session: store is required")
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Manager[Data]{store: store, cfg: cfg}
}

// New returns a fresh, unsaved session.
func (m *Manager[Data]) New() (Session[Data], error) {
	return New[Data](m.cfg.TTL)
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	s, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	if s.IsExpired() || s.IsDeleted() {
		return Session[Data]{}, ErrExpired
	}
	s.persisted = true
	s.isModified = false
	return *s, nil
}

// Store persists sess according to its state and reports whether the
// client copy needs to be rewritten. Deleted sessions are removed; fresh
// sessions without data are not saved at all.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) (bool, error) {
	if sess.IsDeleted() {
		if !sess.persisted {
			return true, nil
		}
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return false, errors.Join(ErrDeleteSession, err)
		}
		return true, nil
	}

	sess.Touch(m.cfg.TTL, m.cfg.TouchInterval)
	if !sess.IsModified() {
		return false, nil
	}
	if err := m.store.Save(ctx, &sess); err != nil {
		return false, errors.Join(ErrSaveSession, err)
	}
	return true, nil
}

// CleanupExpired removes expired sessions from the store.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live.
func (m *Manager[Data]) TTL() time.Duration {
	return m.cfg.TTL
}
