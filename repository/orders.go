package repository

import (
	"context"
	"errors"

	"bicycle-odyssey/models"
	"bicycle-odyssey/store"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrEmptyTransaction guards the paid/transactionId invariant
var ErrEmptyTransaction = errors.New("transaction id is required to mark an order paid")

// OrderRepository is the order adapter
type OrderRepository struct {
	Documents[models.Order]
}

func NewOrderRepository(db store.Database) *OrderRepository {
	return &OrderRepository{Documents[models.Order]{coll: db.Collection(OrdersCollection)}}
}

// ListByEmail returns the orders placed by email, or every order when email is empty
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return r.List(ctx, byEmail(email))
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*store.InsertResult, error) {
	order.Paid = false
	order.TransactionID = ""
	return r.Insert(ctx, order)
}

// MarkDelivered records the shipping note shown to the customer
func (r *OrderRepository) MarkDelivered(ctx context.Context, id, text string) (*store.UpdateResult, error) {
	return r.UpdateByID(ctx, id, bson.M{"deliveredText": text}, false)
}

// MarkPaid sets paid and transactionId in one single-document write
func (r *OrderRepository) MarkPaid(ctx context.Context, id, transactionID string) (*store.UpdateResult, error) {
	if transactionID == "" {
		return nil, ErrEmptyTransaction
	}
	return r.UpdateByID(ctx, id, bson.M{"paid": true, "transactionId": transactionID}, false)
}
