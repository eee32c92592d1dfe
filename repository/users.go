package repository

import (
	"context"
	"errors"

	"bicycle-odyssey/models"
	"bicycle-odyssey/store"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository is the user-role adapter. Email is the business key.
type UserRepository struct {
	Documents[models.User]
}

func NewUserRepository(db store.Database) *UserRepository {
	return &UserRepository{Documents[models.User]{coll: db.Collection(UsersCollection)}}
}

// FindByEmail returns nil without error when no user has that email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates or updates the user for email. The role is never taken
// from the caller; it only changes through MakeAdmin.
func (r *UserRepository) Upsert(ctx context.Context, email string, user models.User) (*store.UpdateResult, error) {
	set := bson.M{"email": email}
	if user.Name != "" {
		set["name"] = user.Name
	}
	return r.coll.UpdateOne(ctx, bson.M{"email": email}, set, true)
}

// MakeAdmin elevates the user with email. It does not create missing users.
func (r *UserRepository) MakeAdmin(ctx context.Context, email string) (*store.UpdateResult, error) {
	return r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"role": models.RoleAdmin}, false)
}
