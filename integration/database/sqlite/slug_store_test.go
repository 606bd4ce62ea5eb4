package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/integration/database/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), sqlite.Config{Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, err := sqlite.Open(context.Background(), sqlite.Config{}, nil)
		assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
	})

	t.Run("creates file and reapplies migrations", func(t *testing.T) {
		t.Parallel()
		cfg := sqlite.Config{Path: filepath.Join(t.TempDir(), "nested", "app.db"), MaxOpenConns: 4}

		db, err := sqlite.Open(context.Background(), cfg, nil)
		require.NoError(t, err)
		require.NoError(t, sqlite.NewSlugStore(db, "articles").Put(context.Background(), slugger.Entity{ID: "1", Slug: "kept"}))
		require.NoError(t, db.Close())

		db, err = sqlite.Open(context.Background(), cfg, nil)
		require.NoError(t, err)
		defer db.Close()

		got, err := sqlite.NewSlugStore(db, "articles").Get(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "kept", got.Slug)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	db := openMemory(t)

	assert.NoError(t, sqlite.Healthcheck(db)(context.Background()))
}

func TestSlugStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put get exists", func(t *testing.T) {
		t.Parallel()
		store := sqlite.NewSlugStore(openMemory(t), "articles")

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
		store := sqlite.NewSlugStore(openMemory(t), "articles")

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Slug: "taken"}))
		err := store.Put(ctx, slugger.Entity{ID: "2", Slug: "taken"})
		assert.ErrorIs(t, err, slugger.ErrConflict)
	})

	t.Run("update keeps id and frees old slug", func(t *testing.T) {
		t.Parallel()
		store := sqlite.NewSlugStore(openMemory(t), "articles")

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Title: "Old", Slug: "old"}))
		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "1", Title: "New", Slug: "new"}))

		got, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, slugger.Entity{ID: "1", Title: "New", Slug: "new"}, got)

		require.NoError(t, store.Put(ctx, slugger.Entity{ID: "2", Slug: "old"}))
	})

	t.Run("collections are isolated", func(t *testing.T) {
		t.Parallel()
		db := openMemory(t)

		require.NoError(t, sqlite.NewSlugStore(db, "articles").Put(ctx, slugger.Entity{ID: "1", Slug: "same"}))
		require.NoError(t, sqlite.NewSlugStore(db, "pages").Put(ctx, slugger.Entity{ID: "1", Slug: "same"}))
	})

	t.Run("resolver over sqlite", func(t *testing.T) {
		t.Parallel()
		resolver, err := slugger.New(sqlite.NewSlugStore(openMemory(t), "articles"))
		require.NoError(t, err)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			slugs = map[string]bool{}
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e, err := resolver.Save(ctx, slugger.Entity{Title: "Hello World"})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				slugs[e.Slug] = true
			}()
		}
		wg.Wait()

		assert.Len(t, slugs, 8)
		assert.True(t, slugs["hello-world"])
		assert.True(t, slugs["hello-world-7"])
	})
}
