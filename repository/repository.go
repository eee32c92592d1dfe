// Package repository holds one adapter per collection. Each adapter owns its
// collection exclusively and maps one call to one store operation.
package repository

import (
	"context"
	"fmt"

	"bicycle-odyssey/store"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names inside the storefront database
const (
	PartsCollection    = "parts"
	OrdersCollection   = "orderd"
	UsersCollection    = "users"
	ReviewsCollection  = "reviews"
	PaymentsCollection = "payments"
	ProfilesCollection = "profiles"
)

// Documents implements the CRUD surface shared by every adapter
type Documents[T any] struct {
	coll store.Collection
}

// List returns every document matching filter; a nil filter matches all
func (d Documents[T]) List(ctx context.Context, filter bson.M) ([]T, error) {
	out := []T{}
	if err := d.coll.Find(ctx, filter, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// GetByID returns store.ErrNotFound when id is absent and store.ErrInvalidID when malformed
func (d Documents[T]) GetByID(ctx context.Context, id string) (*T, error) {
	filter, err := store.ByID(id)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := d.coll.FindOne(ctx, filter, &doc); err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return &doc, nil
}

func (d Documents[T]) Insert(ctx context.Context, doc *T) (*store.InsertResult, error) {
	return d.coll.InsertOne(ctx, doc)
}

// UpdateByID merges patch into the document; upsert creates it when missing
func (d Documents[T]) UpdateByID(ctx context.Context, id string, patch bson.M, upsert bool) (*store.UpdateResult, error) {
	filter, err := store.ByID(id)
	if err != nil {
		return nil, err
	}
	return d.coll.UpdateOne(ctx, filter, patch, upsert)
}

func (d Documents[T]) DeleteByID(ctx context.Context, id string) (*store.DeleteResult, error) {
	filter, err := store.ByID(id)
	if err != nil {
		return nil, err
	}
	return d.coll.DeleteOne(ctx, filter)
}

// byEmail builds the exact-match email filter; an empty email matches everything
func byEmail(email string) bson.M {
	if email == "" {
		return nil
	}
	return bson.M{"email": email}
}
