// Package pg connects to PostgreSQL through a pgx pool and provides a
// slugger.Store backed by the slugs table.
//
// Connect retries the initial ping, Migrate applies the embedded goose
// migrations and Healthcheck returns a check for readiness endpoints:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	resolver, err := slugger.New(pg.NewSlugStore(pool, "articles"))
//
// Configuration is read from PG_* environment variables, see Config.
//
// Store calls honour a transaction placed in the context with WithTx or InTx.
// A unique violation aborts the surrounding transaction, so conflict retries
// performed by slugger.Resolver.Save only succeed outside one.
//
// Errors from pgx can be classified with IsNotFoundError, IsDuplicateKeyError,
// IsForeignKeyViolationError and IsTxClosedError.
package pg
