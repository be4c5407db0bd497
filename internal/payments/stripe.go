package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// IntentCreator starts a card payment with the external processor and hands
// back the client secret the frontend needs to confirm it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}

// StripeClient creates PaymentIntents against the Stripe API.
type StripeClient struct{}

// NewStripeClient configures the package-level Stripe key and returns a client.
func NewStripeClient(secretKey string) (*StripeClient, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is not configured")
	}
	stripe.Key = secretKey
	return &StripeClient{}, nil
}

func (c *StripeClient) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
