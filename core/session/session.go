package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous visitor session carrying application data such
// as the preferred time zone.
type Session[Data any] struct {
	// ID never changes during the session lifecycle.
	ID uuid.UUID `json:"id"`

	// Token is the secret handed to the client (32 bytes base64url).
	Token string `json:"token"`

	Data Data `json:"data"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitzero"`

	isModified bool
	// persisted is set for sessions loaded from a store. Fresh sessions are
	// only written once they carry data.
	persisted bool
}

// New creates an unsaved session with a generated token and ID.
func New[Data any](ttl time.Duration) (Session[Data], error) {
	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:        uuid.New(),
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetData replaces the session data and marks the session for saving.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Refresh rotates the session token without changing the session ID.
func (s *Session[Data]) Refresh() error {
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = token
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Destroy marks the session for deletion.
func (s *Session[Data]) Destroy() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// Touch extends the expiration of a stored session once touchInterval has
// elapsed since the last update. A zero interval disables touching.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if !s.persisted || touchInterval <= 0 {
		return
	}
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// IsDeleted reports whether the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session needs saving.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired reports whether the session has expired.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsPersisted reports whether the session was loaded from a store.
func (s Session[Data]) IsPersisted() bool {
	return s.persisted
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
