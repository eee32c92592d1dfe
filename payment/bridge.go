// Package payment creates card payment intents and records completed
// payments against orders.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/store"
	"bicycle-odyssey/utils"

	"go.uber.org/zap"
)

const (
	// Currency is the only currency the storefront charges in
	Currency = "usd"
	// MethodCard is the only accepted payment method class
	MethodCard = "card"
)

var (
	ErrInvalidAmount      = errors.New("total price must be a positive number")
	ErrMissingTransaction = errors.New("transactionId is required")
	ErrProvider           = errors.New("payment provider error")
)

// Notifier is told about every confirmed payment
type Notifier interface {
	SendPaymentReceipt(payment models.Payment) error
}

// Confirmation carries the outcome of both confirmation writes
type Confirmation struct {
	Order   *store.UpdateResult
	Payment *store.UpdateResult
}

// Bridge pairs the payment processor with the order and payment adapters
type Bridge struct {
	processor Processor
	orders    *repository.OrderRepository
	payments  *repository.PaymentRepository
	notifier  Notifier
}

// NewBridge wires the bridge; processor and notifier may be nil
func NewBridge(processor Processor, orders *repository.OrderRepository, payments *repository.PaymentRepository, notifier Notifier) *Bridge {
	return &Bridge{
		processor: processor,
		orders:    orders,
		payments:  payments,
		notifier:  notifier,
	}
}

// CreateIntent asks the processor for a USD card intent of totalPrice dollars
func (b *Bridge) CreateIntent(ctx context.Context, totalPrice float64) (*models.PaymentIntent, error) {
	if math.IsNaN(totalPrice) || math.IsInf(totalPrice, 0) || totalPrice <= 0 {
		return nil, ErrInvalidAmount
	}
	if b.processor == nil {
		return nil, fmt.Errorf("%w: no processor configured", ErrProvider)
	}

	amount := int64(math.Round(totalPrice * 100))
	secret, err := b.processor.CreatePaymentIntent(ctx, amount, Currency, []string{MethodCard})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return &models.PaymentIntent{ClientSecret: secret}, nil
}

// ConfirmPayment marks the order paid and records the payment. The two
// writes are independent: both are attempted even if one fails. The payment
// write is keyed by transaction id, so retrying a partial confirmation
// converges without duplicating the payment.
func (b *Bridge) ConfirmPayment(ctx context.Context, orderID string, record models.Payment) (*Confirmation, error) {
	if record.TransactionID == "" {
		return nil, ErrMissingTransaction
	}
	if _, err := store.ObjectID(orderID); err != nil {
		return nil, err
	}
	if record.OrderID == "" {
		record.OrderID = orderID
	}

	var conf Confirmation
	var orderErr, paymentErr error
	conf.Order, orderErr = b.orders.MarkPaid(ctx, orderID, record.TransactionID)
	if orderErr != nil {
		orderErr = fmt.Errorf("mark order paid: %w", orderErr)
	}
	conf.Payment, paymentErr = b.payments.Record(ctx, &record)
	if paymentErr != nil {
		paymentErr = fmt.Errorf("record payment: %w", paymentErr)
	}
	if err := errors.Join(orderErr, paymentErr); err != nil {
		return &conf, fmt.Errorf("confirm payment for order %s: %w", orderID, err)
	}
	if conf.Order.MatchedCount == 0 {
		utils.LoggerFrom(ctx).Warn("payment recorded for unknown order",
			zap.String("order_id", orderID),
			zap.String("transaction_id", record.TransactionID))
	}

	b.notify(ctx, record)
	return &conf, nil
}

func (b *Bridge) notify(ctx context.Context, record models.Payment) {
	if b.notifier == nil || record.Email == "" {
		return
	}
	logger := utils.LoggerFrom(ctx)
	go func(p models.Payment) {
		if err := b.notifier.SendPaymentReceipt(p); err != nil {
			logger.Warn("payment receipt not sent",
				zap.String("order_id", p.OrderID),
				zap.String("transaction_id", p.TransactionID),
				zap.Error(err))
		}
	}(record)
}
