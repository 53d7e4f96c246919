package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Bridge forwards a minor-unit amount to the external payment gateway and
// returns a client-usable payment handle.
type Bridge interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (clientSecret string, err error)
}

// StripeBridge implements Bridge on the Stripe API.
type StripeBridge struct {
	api *client.API
}

// Ensure StripeBridge implements Bridge
var _ Bridge = (*StripeBridge)(nil)

// NewStripeBridge creates a bridge authenticated with the gateway secret key.
func NewStripeBridge(secretKey string) *StripeBridge {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeBridge{api: api}
}

// CreateIntent creates a card-payable payment intent and returns its client
// secret. Every call creates a fresh intent; no idempotency key is attached.
func (b *StripeBridge) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := b.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
