package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed card payment for an order
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Amount        float64            `bson:"amount,omitempty" json:"amount,omitempty"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent
type PaymentIntentRequest struct {
	TotalPrice float64 `json:"totalPrice"`
}

// PaymentIntent is returned to the client to finish the card payment
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}
