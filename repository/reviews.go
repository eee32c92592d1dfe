package repository

import (
	"bicycle-odyssey/models"
	"bicycle-odyssey/store"
)

// ReviewRepository is append-only; only List and Insert are routed
type ReviewRepository struct {
	Documents[models.Review]
}

func NewReviewRepository(db store.Database) *ReviewRepository {
	return &ReviewRepository{Documents[models.Review]{coll: db.Collection(ReviewsCollection)}}
}
