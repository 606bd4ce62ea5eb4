// Package redis connects to Redis with go-redis and provides a slugger.Store
// that claims slug keys atomically.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	resolver, err := slugger.New(redis.NewSlugStore(client, "articles"))
//
// Configuration is read from REDIS_* environment variables, see Config.
// The put script touches a key it derives at run time, so the store targets
// a single node rather than a cluster.
package redis
