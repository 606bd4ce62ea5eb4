// Package sqlite opens an embedded SQLite database with the pure Go
// modernc.org/sqlite driver and provides a slugger.Store on top of it.
//
//	db, err := sqlite.Open(ctx, sqlite.Config{Path: "data/app.db"}, log)
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	resolver, err := slugger.New(sqlite.NewSlugStore(db, "articles"))
//
// Open applies the embedded goose migrations before returning.
package sqlite
