package slugger

import (
	"context"

	"github.com/google/uuid"
)

// Entity is the slice of an owning record the resolver cares about.
// An empty ID means the record has not been persisted yet.
type Entity struct {
	ID    string
	Title string
	Slug  string
}

// Store is the persistence collaborator for a single collection.
// Implementations must enforce slug uniqueness in Put.
type Store interface {
	// Exists reports whether any entity other than excludeID holds slug.
	Exists(ctx context.Context, slug, excludeID string) (bool, error)
	// Get returns the stored entity or ErrNotFound.
	Get(ctx context.Context, id string) (Entity, error)
	// Put inserts or updates e by ID, returning ErrConflict when the slug is taken.
	Put(ctx context.Context, e Entity) error
}

// NewID returns a fresh identity for entities saved without one.
func NewID() string {
	return uuid.NewString()
}
