package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a customer testimonial
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Description string             `bson:"description" json:"description"`
	Rating      float64            `bson:"rating" json:"rating"`
	Image       string             `bson:"img,omitempty" json:"img,omitempty"`
}
