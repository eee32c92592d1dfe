package repository

import (
	"context"

	"bicycle-odyssey/models"
	"bicycle-odyssey/store"

	"go.mongodb.org/mongo-driver/bson"
)

// PartRepository is the catalog adapter
type PartRepository struct {
	Documents[models.Part]
}

func NewPartRepository(db store.Database) *PartRepository {
	return &PartRepository{Documents[models.Part]{coll: db.Collection(PartsCollection)}}
}

// SetQuantity replaces the stock count after a delivery, creating the part if needed
func (r *PartRepository) SetQuantity(ctx context.Context, id string, quantity int) (*store.UpdateResult, error) {
	return r.UpdateByID(ctx, id, bson.M{"quantity": quantity}, true)
}
