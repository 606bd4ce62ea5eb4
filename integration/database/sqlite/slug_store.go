package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sagetools/sagekit/core/slugger"
)

// SlugStore keeps slugs of one collection in the slugs table.
type SlugStore struct {
	db         *sql.DB
	collection string
}

var _ slugger.Store = (*SlugStore)(nil)

// NewSlugStore returns a store scoped to collection.
func NewSlugStore(db *sql.DB, collection string) *SlugStore {
	return &SlugStore{db: db, collection: collection}
}

func (s *SlugStore) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM slugs WHERE collection = ? AND slug = ? AND id <> ?)`,
		s.collection, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: slug exists: %w", err)
	}
	return exists, nil
}

func (s *SlugStore) Get(ctx context.Context, id string) (slugger.Entity, error) {
	var e slugger.Entity
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, slug FROM slugs WHERE collection = ? AND id = ?`,
		s.collection, id,
	).Scan(&e.ID, &e.Title, &e.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return slugger.Entity{}, slugger.ErrNotFound
	}
	if err != nil {
		return slugger.Entity{}, fmt.Errorf("sqlite: get slug: %w", err)
	}
	return e, nil
}

func (s *SlugStore) Put(ctx context.Context, e slugger.Entity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slugs (collection, id, title, slug) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id)
		DO UPDATE SET title = excluded.title, slug = excluded.slug, updated_at = CURRENT_TIMESTAMP`,
		s.collection, e.ID, e.Title, e.Slug,
	)
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", slugger.ErrConflict, e.Slug)
	}
	if err != nil {
		return fmt.Errorf("sqlite: put slug: %w", err)
	}
	return nil
}
