package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ Database   = (*MongoDatabase)(nil)
	_ Collection = (*MongoCollection)(nil)
)

// MongoDatabase serves collections from one MongoDB database
type MongoDatabase struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoDatabase wraps db; every operation is bounded by timeout
func NewMongoDatabase(db *mongo.Database, timeout time.Duration) *MongoDatabase {
	return &MongoDatabase{db: db, timeout: timeout}
}

// Collection returns a Collection backed by the named MongoDB collection
func (m *MongoDatabase) Collection(name string) Collection {
	return &MongoCollection{coll: m.db.Collection(name), timeout: m.timeout}
}

// MongoCollection implements Collection over a *mongo.Collection
type MongoCollection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (c *MongoCollection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *MongoCollection) Find(ctx context.Context, filter bson.M, out interface{}) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCollection) FindOne(ctx context.Context, filter bson.M, out interface{}) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCollection) InsertOne(ctx context.Context, doc interface{}) (*InsertResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("insert into %s: %w: %v", c.coll.Name(), ErrDuplicateID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (c *MongoCollection) UpdateOne(ctx context.Context, filter bson.M, set interface{}, upsert bool) (*UpdateResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	opts := options.Update().SetUpsert(upsert)
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	return fromMongoUpdate(res), nil
}

func (c *MongoCollection) InsertIfAbsent(ctx context.Context, filter bson.M, doc interface{}) (*UpdateResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, opts)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	return fromMongoUpdate(res), nil
}

func (c *MongoCollection) DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func fromMongoUpdate(res *mongo.UpdateResult) *UpdateResult {
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}
