package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway implements Gateway on top of Stripe PaymentIntents for
// deployments that collect cards through Stripe instead of the default
// order gateway. The global stripe.Key is set at startup.
type StripeGateway struct{}

// CreateOrder opens a PaymentIntent for the amount in minor units.
func (StripeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	params.AddMetadata("receipt", receipt)
	for k, v := range notes {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe payment intent: %w", err)
	}
	return &Order{ID: pi.ID, Amount: amount, Currency: currency}, nil
}

// Refund refunds a captured PaymentIntent, fully or partially.
func (StripeGateway) Refund(ctx context.Context, gatewayPaymentID string, amount int64, notes map[string]string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(gatewayPaymentID),
		Amount:        stripe.Int64(amount),
	}
	params.Context = ctx
	for k, v := range notes {
		params.AddMetadata(k, v)
	}

	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("creating stripe refund: %w", err)
	}
	return r.ID, nil
}
