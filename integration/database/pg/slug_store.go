package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagetools/sagekit/core/slugger"
)

// SlugStore keeps slugs of one collection in the slugs table.
// Uniqueness is enforced by the (collection, slug) constraint.
type SlugStore struct {
	pool       *pgxpool.Pool
	collection string
}

var _ slugger.Store = (*SlugStore)(nil)

// NewSlugStore returns a store scoped to collection.
func NewSlugStore(pool *pgxpool.Pool, collection string) *SlugStore {
	return &SlugStore{pool: pool, collection: collection}
}

const (
	existsQuery = `SELECT EXISTS (
		SELECT 1 FROM slugs WHERE collection = $1 AND slug = $2 AND id <> $3
	)`
	getQuery = `SELECT id, title, slug FROM slugs WHERE collection = $1 AND id = $2`
	putQuery = `INSERT INTO slugs (collection, id, title, slug)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, id)
		DO UPDATE SET title = EXCLUDED.title, slug = EXCLUDED.slug, updated_at = now()`
)

func (s *SlugStore) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	if err := conn(ctx, s.pool).QueryRow(ctx, existsQuery, s.collection, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pg: slug exists: %w", err)
	}
	return exists, nil
}

func (s *SlugStore) Get(ctx context.Context, id string) (slugger.Entity, error) {
	var e slugger.Entity
	err := conn(ctx, s.pool).QueryRow(ctx, getQuery, s.collection, id).Scan(&e.ID, &e.Title, &e.Slug)
	if IsNotFoundError(err) {
		return slugger.Entity{}, slugger.ErrNotFound
	}
	if err != nil {
		return slugger.Entity{}, fmt.Errorf("pg: get slug: %w", err)
	}
	return e, nil
}

func (s *SlugStore) Put(ctx context.Context, e slugger.Entity) error {
	_, err := conn(ctx, s.pool).Exec(ctx, putQuery, s.collection, e.ID, e.Title, e.Slug)
	if IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", slugger.ErrConflict, e.Slug)
	}
	if err != nil {
		return fmt.Errorf("pg: put slug: %w", err)
	}
	return nil
}
