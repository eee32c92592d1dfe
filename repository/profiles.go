package repository

import (
	"context"

	"bicycle-odyssey/models"
	"bicycle-odyssey/store"
)

type ProfileRepository struct {
	Documents[models.Profile]
}

func NewProfileRepository(db store.Database) *ProfileRepository {
	return &ProfileRepository{Documents[models.Profile]{coll: db.Collection(ProfilesCollection)}}
}

// ListByEmail returns the profiles of email, or every profile when email is empty
func (r *ProfileRepository) ListByEmail(ctx context.Context, email string) ([]models.Profile, error) {
	return r.List(ctx, byEmail(email))
}
