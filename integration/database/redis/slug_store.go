package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sagetools/sagekit/core/slugger"
)

// SlugStore keeps slugs of one collection in Redis.
//
// Keys, with prefix "slug:{collection}:":
//
//	{prefix}s:{slug}  string, id of the holder
//	{prefix}e:{id}    hash with title and slug fields
//
// Put claims the slug key only when it is free or already held by the same
// id, and releases the previous slug of that id, in one script.
type SlugStore struct {
	client redis.UniversalClient
	prefix string
}

var _ slugger.Store = (*SlugStore)(nil)

// NewSlugStore returns a store scoped to collection.
func NewSlugStore(client redis.UniversalClient, collection string) *SlugStore {
	return &SlugStore{client: client, prefix: "slug:" + collection + ":"}
}

// KEYS[1] slug key, KEYS[2] entity hash
// ARGV[1] id, ARGV[2] title, ARGV[3] slug, ARGV[4] slug key prefix
var putScript = redis.NewScript(`
local holder = redis.call('GET', KEYS[1])
if holder and holder ~= ARGV[1] then
	return 0
end
local old = redis.call('HGET', KEYS[2], 'slug')
if old and old ~= ARGV[3] then
	redis.call('DEL', ARGV[4] .. old)
end
redis.call('SET', KEYS[1], ARGV[1])
redis.call('HSET', KEYS[2], 'title', ARGV[2], 'slug', ARGV[3])
return 1
`)

func (s *SlugStore) slugKey(slug string) string { return s.prefix + "s:" + slug }
func (s *SlugStore) entityKey(id string) string { return s.prefix + "e:" + id }

func (s *SlugStore) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	holder, err := s.client.Get(ctx, s.slugKey(slug)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: slug exists: %w", err)
	}
	return holder != excludeID, nil
}

func (s *SlugStore) Get(ctx context.Context, id string) (slugger.Entity, error) {
	fields, err := s.client.HGetAll(ctx, s.entityKey(id)).Result()
	if err != nil {
		return slugger.Entity{}, fmt.Errorf("redis: get slug: %w", err)
	}
	if len(fields) == 0 {
		return slugger.Entity{}, slugger.ErrNotFound
	}
	return slugger.Entity{ID: id, Title: fields["title"], Slug: fields["slug"]}, nil
}

func (s *SlugStore) Put(ctx context.Context, e slugger.Entity) error {
	keys := []string{s.slugKey(e.Slug), s.entityKey(e.ID)}
	claimed, err := putScript.Run(ctx, s.client, keys, e.ID, e.Title, e.Slug, s.prefix+"s:").Int()
	if err != nil {
		return fmt.Errorf("redis: put slug: %w", err)
	}
	if claimed == 0 {
		return fmt.Errorf("%w: %s", slugger.ErrConflict, e.Slug)
	}
	return nil
}
