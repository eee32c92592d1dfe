package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Part represents a bicycle part in the catalog
type Part struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Image        string             `bson:"img" json:"img"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	MinimumOrder int                `bson:"minimumOrder,omitempty" json:"minimumOrder,omitempty"`
}

// PartUpdate is the body of PUT /parts/{id}
type PartUpdate struct {
	DeliveredQuantity *int `json:"deliveredQuantity"`
}
