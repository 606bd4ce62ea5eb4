package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/integration/database/redis"
)

func setupClient(t *testing.T) *goredis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})
}

func TestSlugStore(t *testing.T) {
	t.Parallel()
	client := setupClient(t)
	ctx := context.Background()

	newStore := func() *redis.SlugStore {
		return redis.NewSlugStore(client, "test-"+slugger.NewID())
	}

	t.Run("put get exists", func(t *testing.T) {
		t.Parallel()
		store := newStore()

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, slugger.ErrNotFound)

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Title: "Hello", Slug: "hello"}))

		got, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, slugger.Entity{ID: "1", Title: "Hello", Slug: "hello"}, got)

		exists, err := store.Exists(ctx, "hello", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Exists(ctx, "hello", "1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("conflict on taken slug", func(t *testing.T) {
		t.Parallel()
		store := newStore()

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Slug: "taken"}))
		assert.ErrorIs(t, store.Put(ctx, slugger.Entity{ID: "2", Slug: "taken"}), slugger.ErrConflict)
	})

	t.Run("rename releases old slug", func(t *testing.T) {
		t.Parallel()
		store := newStore()

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Slug: "old"}))
		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Slug: "new"}))

		exists, err := store.Exists(ctx, "old", "")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "2", Slug: "old"}))
	})
}
