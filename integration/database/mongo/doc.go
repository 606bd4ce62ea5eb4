// Package mongo connects to MongoDB with the official v2 driver and provides
// a slugger.Store backed by unique indexes.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := mongo.NewSlugStore(db, "articles")
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Configuration is read from MONGODB_* environment variables:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//	MONGODB_DATABASE            (default: sagekit)
//
// A duplicate key error from an upsert is reported as slugger.ErrConflict.
package mongo
