package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sagetools/sagekit/core/slugger"
)

// DefaultSlugCollection is the MongoDB collection holding slug documents.
const DefaultSlugCollection = "slugs"

type slugDocument struct {
	Collection string `bson:"collection"`
	EntityID   string `bson:"entity_id"`
	Title      string `bson:"title"`
	Slug       string `bson:"slug"`
}

// SlugStore keeps slugs of one logical collection in a MongoDB collection
// shared by all stores. Call EnsureIndexes once before use.
type SlugStore struct {
	coll       *mongo.Collection
	collection string
}

var _ slugger.Store = (*SlugStore)(nil)

// NewSlugStore returns a store for collection inside db.
func NewSlugStore(db *mongo.Database, collection string) *SlugStore {
	return &SlugStore{coll: db.Collection(DefaultSlugCollection), collection: collection}
}

// EnsureIndexes creates the unique indexes on (collection, slug) and
// (collection, entity_id).
func (s *SlugStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "collection", Value: 1}, {Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("collection_slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "collection", Value: 1}, {Key: "entity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("collection_entity_unique"),
		},
	})
	if err != nil {
		return errors.Join(ErrIndexCreation, err)
	}
	return nil
}

func (s *SlugStore) Exists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.D{
		{Key: "collection", Value: s.collection},
		{Key: "slug", Value: slug},
		{Key: "entity_id", Value: bson.D{{Key: "$ne", Value: excludeID}}},
	}
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo: slug exists: %w", err)
	}
	return n > 0, nil
}

func (s *SlugStore) Get(ctx context.Context, id string) (slugger.Entity, error) {
	var doc slugDocument
	err := s.coll.FindOne(ctx, s.entityFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return slugger.Entity{}, slugger.ErrNotFound
	}
	if err != nil {
		return slugger.Entity{}, fmt.Errorf("mongo: get slug: %w", err)
	}
	return slugger.Entity{ID: doc.EntityID, Title: doc.Title, Slug: doc.Slug}, nil
}

func (s *SlugStore) Put(ctx context.Context, e slugger.Entity) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: e.Title},
		{Key: "slug", Value: e.Slug},
	}}}
	_, err := s.coll.UpdateOne(ctx, s.entityFilter(e.ID), update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", slugger.ErrConflict, e.Slug)
	}
	if err != nil {
		return fmt.Errorf("mongo: put slug: %w", err)
	}
	return nil
}

func (s *SlugStore) entityFilter(id string) bson.D {
	return bson.D{
		{Key: "collection", Value: s.collection},
		{Key: "entity_id", Value: id},
	}
}
