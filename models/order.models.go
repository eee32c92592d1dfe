package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a checkout of one part by one user.
// Paid is only ever set together with a non-empty TransactionID.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PartID        string             `bson:"partId" json:"partId"`
	PartName      string             `bson:"partName,omitempty" json:"partName,omitempty"`
	Email         string             `bson:"email" json:"email"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	DeliveredText string             `bson:"deliveredText,omitempty" json:"deliveredText,omitempty"`
}

// OrderDeliveryUpdate is the body of PUT /ordered/{id}
type OrderDeliveryUpdate struct {
	DeliverText string `json:"delivertext"`
}
