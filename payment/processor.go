package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Processor creates payment intents with an external card processor
type Processor interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, methodTypes []string) (clientSecret string, err error)
}

// StripeProcessor talks to the Stripe API
type StripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	return &StripeProcessor{api: client.New(secretKey, nil)}
}

func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, amount int64, currency string, methodTypes []string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(methodTypes),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
