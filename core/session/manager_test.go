package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/session"
)

type prefs struct {
	Timezone string `json:"timezone"`
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByToken(ctx context.Context, token string) (*session.Session[prefs], error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session[prefs]), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, sess *session.Session[prefs]) error {
	return m.Called(ctx, sess).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestManagerFreshSessionIsNotSaved(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	mgr := session.NewManager[prefs](store)

	sess, err := mgr.New()
	require.NoError(t, err)
	assert.False(t, sess.IsPersisted())

	written, err := mgr.Store(context.Background(), sess)
	require.NoError(t, err)
	assert.False(t, written)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestManagerSavesSessionWithData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &mockStore{}
	store.On("Save", ctx, mock.MatchedBy(func(s *session.Session[prefs]) bool {
		return s.Data.Timezone == "Europe/Madrid"
	})).Return(nil).Once()

	mgr := session.NewManager[prefs](store)
	sess, err := mgr.New()
	require.NoError(t, err)
	sess.SetData(prefs{Timezone: "Europe/Madrid"})

	written, err := mgr.Store(ctx, sess)
	require.NoError(t, err)
	assert.True(t, written)
	store.AssertExpectations(t)
}

func TestManagerStoreErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")

	store := &mockStore{}
	store.On("Save", ctx, mock.Anything).Return(boom)
	mgr := session.NewManager[prefs](store)

	sess, err := mgr.New()
	require.NoError(t, err)
	sess.SetData(prefs{Timezone: "UTC"})
	_, err = mgr.Store(ctx, sess)
	assert.ErrorIs(t, err, session.ErrSaveSession)
	assert.ErrorIs(t, err, boom)
}

func TestManagerGetByToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[prefs]()
	mgr := session.NewManager[prefs](store, session.WithTTL(time.Hour))

	sess, err := mgr.New()
	require.NoError(t, err)
	sess.SetData(prefs{Timezone: "Asia/Tokyo"})
	_, err = mgr.Store(ctx, sess)
	require.NoError(t, err)

	loaded, err := mgr.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "Asia/Tokyo", loaded.Data.Timezone)
	assert.True(t, loaded.IsPersisted())
	assert.False(t, loaded.IsModified())

	_, err = mgr.GetByToken(ctx, "unknown")
	assert.ErrorIs(t, err, session.ErrNotFound)

	expired := sess
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, &expired))
	_, err = mgr.GetByToken(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestManagerDestroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[prefs]()
	mgr := session.NewManager[prefs](store)

	sess, err := mgr.New()
	require.NoError(t, err)
	sess.SetData(prefs{Timezone: "UTC"})
	_, err = mgr.Store(ctx, sess)
	require.NoError(t, err)

	loaded, err := mgr.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	loaded.Destroy()
	written, err := mgr.Store(ctx, loaded)
	require.NoError(t, err)
	assert.True(t, written)

	_, err = mgr.GetByToken(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManagerTouch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[prefs]()
	mgr := session.NewManager[prefs](store, session.WithConfig(session.Config{
		TTL:           time.Hour,
		TouchInterval: time.Minute,
	}))

	sess, err := mgr.New()
	require.NoError(t, err)
	sess.SetData(prefs{Timezone: "UTC"})
	sess.UpdatedAt = time.Now().Add(-2 * time.Minute)
	sess.ExpiresAt = time.Now().Add(10 * time.Minute)
	require.NoError(t, store.Save(ctx, &sess))

	loaded, err := mgr.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	written, err := mgr.Store(ctx, loaded)
	require.NoError(t, err)
	assert.True(t, written, "interval elapsed")

	touched, err := mgr.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), touched.ExpiresAt, 5*time.Second)

	written, err = mgr.Store(ctx, touched)
	require.NoError(t, err)
	assert.False(t, written, "interval not elapsed")
}

func TestManagerCleanupExpired(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	store.On("DeleteExpired", mock.Anything).Return(int64(3), nil)
	mgr := session.NewManager[prefs](store)

	n, err := mgr.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, session.DefaultConfig().TTL, mgr.TTL())
}
