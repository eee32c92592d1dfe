// Package store is the document-store layer shared by every repository.
// A Collection is a thin view over one MongoDB collection; the in-memory
// driver implements the same contract for local runs and tests.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned by FindOne when no document matches
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an id is not a valid ObjectID
	ErrInvalidID = errors.New("invalid document id")
	// ErrDuplicateID is returned by InsertOne when the _id is already taken
	ErrDuplicateID = errors.New("duplicate document id")
)

// InsertResult mirrors the acknowledgement a document store returns for an insert
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgement a document store returns for an update
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult mirrors the acknowledgement a document store returns for a delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is the set of single-document operations the repositories need.
// Every call is one atomic request to the store.
type Collection interface {
	// Find decodes every document matching filter into out, a pointer to a slice
	Find(ctx context.Context, filter bson.M, out interface{}) error
	// FindOne decodes the first match into out or returns ErrNotFound
	FindOne(ctx context.Context, filter bson.M, out interface{}) error
	InsertOne(ctx context.Context, doc interface{}) (*InsertResult, error)
	// UpdateOne applies set as a $set merge on the first match
	UpdateOne(ctx context.Context, filter bson.M, set interface{}, upsert bool) (*UpdateResult, error)
	// InsertIfAbsent inserts doc unless a document already matches filter
	InsertIfAbsent(ctx context.Context, filter bson.M, doc interface{}) (*UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error)
}

// Database hands out collections by name
type Database interface {
	Collection(name string) Collection
}

// ObjectID parses a hex id coming from a URL
func ObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// ByID builds the _id filter for a hex id
func ByID(hex string) (bson.M, error) {
	id, err := ObjectID(hex)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": id}, nil
}
