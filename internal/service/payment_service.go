package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/payment"
)

// paymentCurrency is the fixed settlement currency of the platform.
const paymentCurrency = "usd"

var minorUnitsPerDollar = decimal.NewFromInt(100)

// PaymentService creates payment intents through the external gateway.
type PaymentService interface {
	CreatePayment(ctx context.Context, amount decimal.Decimal) (clientSecret string, err error)
}

type paymentService struct {
	bridge payment.Bridge
}

// NewPaymentService builds a PaymentService on the given gateway bridge.
func NewPaymentService(bridge payment.Bridge) PaymentService {
	return &paymentService{bridge: bridge}
}

// CreatePayment converts the amount to minor units and requests a card
// payment intent. Each call creates a fresh intent; duplicate submissions
// create duplicate intents.
func (s *paymentService) CreatePayment(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", apperrors.ErrInvalidAmount
	}

	amountMinor := amount.Mul(minorUnitsPerDollar).IntPart()
	clientSecret, err := s.bridge.CreateIntent(ctx, amountMinor, paymentCurrency)
	if err != nil {
		return "", fmt.Errorf("payment gateway: %w", err)
	}
	return clientSecret, nil
}
