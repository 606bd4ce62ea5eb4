package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drivermongo "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/integration/database/mongo"
)

func setupDatabase(t *testing.T) *drivermongo.Database {
	t.Helper()

	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		ConnectTimeout: 5 * time.Second,
		RetryAttempts:  1,
	}, "sagekit_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Client().Disconnect(context.Background())
	})
	return db
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestSlugStore(t *testing.T) {
	t.Parallel()
	db := setupDatabase(t)
	ctx := context.Background()

	newStore := func(t *testing.T) *mongo.SlugStore {
		store := mongo.NewSlugStore(db, "test-"+slugger.NewID())
		require.NoError(t, store.EnsureIndexes(ctx))
		return store
	}

	t.Run("healthcheck", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mongo.Healthcheck(db.Client())(ctx))
	})

	t.Run("put get exists", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)

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
		store := newStore(t)

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Slug: "taken"}))
		assert.ErrorIs(t, store.Put(ctx, slugger.Entity{ID: "2", Slug: "taken"}), slugger.ErrConflict)
	})

	t.Run("resolver suffixes collisions", func(t *testing.T) {
		t.Parallel()
		resolver, err := slugger.New(newStore(t))
		require.NoError(t, err)

		first, err := resolver.Save(ctx, slugger.Entity{Title: "Hello World"})
		require.NoError(t, err)
		second, err := resolver.Save(ctx, slugger.Entity{Title: "Hello World"})
		require.NoError(t, err)

		assert.Equal(t, "hello-world", first.Slug)
		assert.Equal(t, "hello-world-1", second.Slug)
	})
}
