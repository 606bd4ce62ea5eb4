package site

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sagetools/sagekit/core/config"
	"github.com/sagetools/sagekit/core/health"
	"github.com/sagetools/sagekit/core/session"
	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/integration/database/mongo"
	"github.com/sagetools/sagekit/integration/database/pg"
	"github.com/sagetools/sagekit/integration/database/redis"
	"github.com/sagetools/sagekit/integration/database/sqlite"
)

type storeHandle struct {
	store    slugger.Store
	sessions session.Store[preferences]
	check    health.Check
	close    func()
}

// openStore connects the backend named by driver and returns a slug store
// for collection together with its readiness check. Sessions live in Redis
// for the redis driver and in memory otherwise.
func openStore(ctx context.Context, driver, collection string, log *slog.Logger) (storeHandle, error) {
	switch driver {
	case DriverMemory, "":
		return storeHandle{store: slugger.NewMemoryStore(), close: func() {}}, nil

	case DriverSQLite:
		var cfg sqlite.Config
		if err := config.Load(&cfg); err != nil {
			return storeHandle{}, err
		}
		db, err := sqlite.Open(ctx, cfg, log)
		if err != nil {
			return storeHandle{}, err
		}
		return storeHandle{
			store: sqlite.NewSlugStore(db, collection),
			check: health.Named(DriverSQLite, sqlite.Healthcheck(db)),
			close: func() { _ = db.Close() },
		}, nil

	case DriverPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return storeHandle{}, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return storeHandle{}, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return storeHandle{}, err
		}
		return storeHandle{
			store: pg.NewSlugStore(pool, collection),
			check: health.Named(DriverPostgres, pg.Healthcheck(pool)),
			close: pool.Close,
		}, nil

	case DriverRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return storeHandle{}, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return storeHandle{}, err
		}
		return storeHandle{
			store:    redis.NewSlugStore(client, collection),
			sessions: redis.NewSessionStore[preferences](client, "session:"),
			check:    health.Named(DriverRedis, redis.Healthcheck(client)),
			close:    func() { _ = client.Close() },
		}, nil

	case DriverMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return storeHandle{}, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg, "")
		if err != nil {
			return storeHandle{}, err
		}
		disconnect := func() { _ = db.Client().Disconnect(context.WithoutCancel(ctx)) }
		store := mongo.NewSlugStore(db, collection)
		if err := store.EnsureIndexes(ctx); err != nil {
			disconnect()
			return storeHandle{}, err
		}
		return storeHandle{
			store: store,
			check: health.Named(DriverMongo, mongo.Healthcheck(db.Client())),
			close: disconnect,
		}, nil
	}

	return storeHandle{}, fmt.Errorf("%w: %q", ErrUnknownStoreDriver, driver)
}
