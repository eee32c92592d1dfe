package repository

import (
	"context"

	"bicycle-odyssey/models"
	"bicycle-odyssey/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentRepository struct {
	Documents[models.Payment]
}

func NewPaymentRepository(db store.Database) *PaymentRepository {
	return &PaymentRepository{Documents[models.Payment]{coll: db.Collection(PaymentsCollection)}}
}

// Record stores the payment once per transaction id, so a retried
// confirmation does not duplicate it.
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment) (*store.UpdateResult, error) {
	if payment.TransactionID == "" {
		return nil, ErrEmptyTransaction
	}
	payment.ID = primitive.NilObjectID
	return r.coll.InsertIfAbsent(ctx, bson.M{"transactionId": payment.TransactionID}, payment)
}

// FindByTransaction returns store.ErrNotFound when nothing was recorded
func (r *PaymentRepository) FindByTransaction(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
