// Package billing wraps the Stripe payment-intent API used for listing
// bookings. The intent's client secret is handed back to the browser,
// which completes the charge directly with Stripe.
package billing

import (
	"context"
	"strconv"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// IntentCreator is the narrow surface handlers depend on, so tests can
// substitute a fake without talking to Stripe.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, listingID uint64) (clientSecret string, err error)
}

// StripeClient creates payment intents against the live Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient initializes a Stripe API client with the given secret key.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a USD payment intent for the given amount in minor
// units and tags it with the listing id so the charge can be traced back.
func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64, listingID uint64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	params.AddMetadata("listingId", strconv.FormatUint(listingID, 10))
	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
