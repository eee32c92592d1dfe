package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/store"
	"bicycle-odyssey/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProcessor struct {
	amount      int64
	currency    string
	methodTypes []string
	err         error
}

func (f *fakeProcessor) CreatePaymentIntent(_ context.Context, amount int64, currency string, methodTypes []string) (string, error) {
	f.amount = amount
	f.currency = currency
	f.methodTypes = methodTypes
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

type receiptRecorder struct {
	sent chan models.Payment
}

func (r *receiptRecorder) SendPaymentReceipt(p models.Payment) error {
	r.sent <- p
	return nil
}

// brokenUpdates fails every UpdateOne on the wrapped collection
type brokenUpdates struct {
	store.Collection
}

func (b brokenUpdates) UpdateOne(context.Context, bson.M, interface{}, bool) (*store.UpdateResult, error) {
	return nil, errors.New("connection reset")
}

type brokenOrdersDB struct {
	*store.MemoryDatabase
}

func (d brokenOrdersDB) Collection(name string) store.Collection {
	c := d.MemoryDatabase.Collection(name)
	if name == repository.OrdersCollection {
		return brokenUpdates{c}
	}
	return c
}

func newBridge(t *testing.T, db store.Database, p Processor, n Notifier) (*Bridge, *repository.OrderRepository, *repository.PaymentRepository) {
	t.Helper()
	orders := repository.NewOrderRepository(db)
	payments := repository.NewPaymentRepository(db)
	return NewBridge(p, orders, payments, n), orders, payments
}

func createOrder(t *testing.T, orders *repository.OrderRepository) string {
	t.Helper()
	res, err := orders.Create(context.Background(), &models.Order{Email: "a@b.com", PartID: "p1", Quantity: 2, TotalPrice: 40})
	require.NoError(t, err)
	return res.InsertedID.(primitive.ObjectID).Hex()
}

func TestCreateIntentConvertsToCents(t *testing.T) {
	proc := &fakeProcessor{}
	bridge, _, _ := newBridge(t, store.NewMemoryDatabase(), proc, nil)

	intent, err := bridge.CreateIntent(context.Background(), 19.99)
	require.NoError(t, err)

	assert.Equal(t, "pi_secret_123", intent.ClientSecret)
	assert.Equal(t, int64(1999), proc.amount)
	assert.Equal(t, "usd", proc.currency)
	assert.Equal(t, []string{"card"}, proc.methodTypes)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	proc := &fakeProcessor{}
	bridge, _, _ := newBridge(t, store.NewMemoryDatabase(), proc, nil)

	for _, price := range []float64{0, -5} {
		_, err := bridge.CreateIntent(context.Background(), price)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Zero(t, proc.amount)
}

func TestCreateIntentWrapsProviderFailure(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("card_declined")}
	bridge, _, _ := newBridge(t, store.NewMemoryDatabase(), proc, nil)

	_, err := bridge.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestCreateIntentWithoutProcessor(t *testing.T) {
	bridge, _, _ := newBridge(t, store.NewMemoryDatabase(), nil, nil)

	_, err := bridge.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestConfirmPaymentMarksOrderAndRecordsPayment(t *testing.T) {
	ctx := context.Background()
	bridge, orders, payments := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)
	id := createOrder(t, orders)

	conf, err := bridge.ConfirmPayment(ctx, id, models.Payment{TransactionID: "pi_1", Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(1), conf.Order.MatchedCount)
	assert.Equal(t, int64(1), conf.Payment.UpsertedCount)

	order, err := orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, order.Paid)
	assert.Equal(t, "pi_1", order.TransactionID)

	payment, err := payments.FindByTransaction(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, id, payment.OrderID)
}

func TestConfirmPaymentRequiresTransaction(t *testing.T) {
	ctx := context.Background()
	bridge, orders, payments := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)
	id := createOrder(t, orders)

	_, err := bridge.ConfirmPayment(ctx, id, models.Payment{})
	assert.ErrorIs(t, err, ErrMissingTransaction)

	order, err := orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, order.Paid)

	all, err := payments.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestConfirmPaymentRejectsMalformedOrderID(t *testing.T) {
	bridge, _, payments := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)

	_, err := bridge.ConfirmPayment(context.Background(), "nope", models.Payment{TransactionID: "pi_1"})
	assert.ErrorIs(t, err, store.ErrInvalidID)

	all, err := payments.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestConfirmPaymentAttemptsBothWrites(t *testing.T) {
	ctx := context.Background()
	db := brokenOrdersDB{store.NewMemoryDatabase()}
	bridge, orders, payments := newBridge(t, db, &fakeProcessor{}, nil)
	id := createOrder(t, orders)

	conf, err := bridge.ConfirmPayment(ctx, id, models.Payment{TransactionID: "pi_9"})
	require.Error(t, err)
	require.NotNil(t, conf)
	assert.Nil(t, conf.Order)
	require.NotNil(t, conf.Payment)

	_, err = payments.FindByTransaction(ctx, "pi_9")
	assert.NoError(t, err)
}

func TestConfirmPaymentRetryDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	bridge, orders, payments := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)
	id := createOrder(t, orders)

	for i := 0; i < 2; i++ {
		_, err := bridge.ConfirmPayment(ctx, id, models.Payment{TransactionID: "pi_1"})
		require.NoError(t, err)
	}

	all, err := payments.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConfirmPaymentSendsReceipt(t *testing.T) {
	ctx := context.Background()
	rec := &receiptRecorder{sent: make(chan models.Payment, 1)}
	bridge, orders, _ := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, rec)
	id := createOrder(t, orders)

	_, err := bridge.ConfirmPayment(ctx, id, models.Payment{TransactionID: "pi_1", Email: "a@b.com", Amount: 40})
	require.NoError(t, err)

	select {
	case p := <-rec.sent:
		assert.Equal(t, "pi_1", p.TransactionID)
		assert.Equal(t, id, p.OrderID)
	case <-time.After(time.Second):
		t.Fatal("receipt was not sent")
	}
}

func TestConfirmPaymentWarnsOnUnknownOrder(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := utils.ContextWithLogger(context.Background(), zap.New(core))
	bridge, _, payments := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)
	ghost := primitive.NewObjectID().Hex()

	conf, err := bridge.ConfirmPayment(ctx, ghost, models.Payment{TransactionID: "pi_x"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), conf.Order.MatchedCount)

	warned := logs.FilterMessage("payment recorded for unknown order").All()
	require.Len(t, warned, 1)
	assert.Equal(t, ghost, warned[0].ContextMap()["order_id"])

	p, err := payments.FindByTransaction(context.Background(), "pi_x")
	require.NoError(t, err)
	assert.Equal(t, ghost, p.OrderID)
}

func TestConfirmPaymentDoesNotWarnForKnownOrder(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := utils.ContextWithLogger(context.Background(), zap.New(core))
	bridge, orders, _ := newBridge(t, store.NewMemoryDatabase(), &fakeProcessor{}, nil)
	id := createOrder(t, orders)

	_, err := bridge.ConfirmPayment(ctx, id, models.Payment{TransactionID: "pi_y"})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}
