package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sagetools/sagekit/core/session"
)

// SessionStore keeps sessions as JSON in Redis.
//
// Keys, with the given prefix:
//
//	{prefix}t:{token}  session JSON, expiring with the session
//	{prefix}i:{id}     current token of the session
//
// Redis expires both keys, so DeleteExpired has nothing to do.
type SessionStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore returns a store using keys under prefix (default "session:").
func NewSessionStore[Data any](client redis.UniversalClient, prefix string) *SessionStore[Data] {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore[Data]{client: client, prefix: prefix}
}

func (s *SessionStore[Data]) tokenKey(token string) string { return s.prefix + "t:" + token }
func (s *SessionStore[Data]) idKey(id uuid.UUID) string    { return s.prefix + "i:" + id.String() }

// GetByToken decodes the session stored under token.
func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get session: %w", err)
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("redis: decode session: %w", err)
	}
	return &sess, nil
}

// Save writes the session and drops the key of a rotated token.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return session.ErrExpired
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: encode session: %w", err)
	}

	prev, err := s.client.Get(ctx, s.idKey(sess.ID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis: save session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if prev != "" && prev != sess.Token {
			p.Del(ctx, s.tokenKey(prev))
		}
		p.Set(ctx, s.tokenKey(sess.Token), raw, ttl)
		p.Set(ctx, s.idKey(sess.ID), sess.Token, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	return nil
}

// Delete removes the session with id and its token key.
func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := s.client.Get(ctx, s.idKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return session.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	if err := s.client.Del(ctx, s.tokenKey(token), s.idKey(id)).Err(); err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op; keys carry their own TTL.
func (s *SessionStore[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
