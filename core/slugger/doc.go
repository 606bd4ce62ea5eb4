// Package slugger assigns collection-unique slugs to entities.
//
// A Resolver derives a base slug from an entity title with pkg/slug and checks
// the Store for base, base-1, base-2, ... returning the first candidate no other
// entity holds. The number of candidates is capped by Config.MaxAttempts.
//
//	store := slugger.NewMemoryStore()
//	r, err := slugger.New(store, slugger.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	post, err := r.Save(ctx, slugger.Entity{Title: "Hello World"})
//	// post.Slug == "hello-world", or "hello-world-1" if taken
//
// Check-then-write is racy, so Save relies on the Store rejecting duplicate
// slugs with ErrConflict and moves on to the next suffix when that happens.
// Stores for PostgreSQL, Redis, MongoDB and SQLite live under
// integration/database.
//
// Storage failures are wrapped with ErrStoreUnavailable and returned as is.
package slugger
