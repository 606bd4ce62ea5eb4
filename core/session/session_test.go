package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/session"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, err := session.New[prefs](time.Hour)
	require.NoError(t, err)
	b, err := session.New[prefs](time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Token, b.Token)
	assert.Len(t, a.Token, 43)
	assert.False(t, a.IsModified())
	assert.False(t, a.IsExpired())
	assert.False(t, a.IsDeleted())
}

func TestRefreshKeepsID(t *testing.T) {
	t.Parallel()

	s, err := session.New[prefs](time.Hour)
	require.NoError(t, err)
	id, token := s.ID, s.Token

	require.NoError(t, s.Refresh())
	assert.Equal(t, id, s.ID)
	assert.NotEqual(t, token, s.Token)
	assert.True(t, s.IsModified())
}

func TestTouchIgnoresUnsavedSessions(t *testing.T) {
	t.Parallel()

	s, err := session.New[prefs](time.Minute)
	require.NoError(t, err)
	s.UpdatedAt = time.Now().Add(-time.Hour)
	s.Touch(time.Hour, time.Second)
	assert.False(t, s.IsModified())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[prefs]()

	s, err := session.New[prefs](time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &s))

	old := s.Token
	require.NoError(t, s.Refresh())
	require.NoError(t, store.Save(ctx, &s))

	_, err = store.GetByToken(ctx, old)
	assert.ErrorIs(t, err, session.ErrNotFound, "rotated token is dropped")
	got, err := store.GetByToken(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	expired, err := session.New[prefs](-time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &expired))

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.Delete(ctx, s.ID))
	assert.ErrorIs(t, store.Delete(ctx, s.ID), session.ErrNotFound)
}
