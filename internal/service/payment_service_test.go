package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "lifestream/internal/errors"
)

// MockBridge is a mock implementation of payment.Bridge.
type MockBridge struct {
	mock.Mock
}

func (m *MockBridge) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	args := m.Called(ctx, amountMinor, currency)
	return args.String(0), args.Error(1)
}

func TestPaymentService_CreatePayment(t *testing.T) {
	tests := []struct {
		name           string
		amount         decimal.Decimal
		setupMock      func(*MockBridge)
		expectedSecret string
		expectedError  error
	}{
		{
			name:   "amount is forwarded in minor units",
			amount: decimal.NewFromInt(50),
			setupMock: func(m *MockBridge) {
				m.On("CreateIntent", mock.Anything, int64(5000), "usd").Return("pi_secret_123", nil)
			},
			expectedSecret: "pi_secret_123",
		},
		{
			name:   "fractional amount",
			amount: decimal.RequireFromString("19.99"),
			setupMock: func(m *MockBridge) {
				m.On("CreateIntent", mock.Anything, int64(1999), "usd").Return("pi_secret_456", nil)
			},
			expectedSecret: "pi_secret_456",
		},
		{
			name:          "zero amount is rejected before the gateway",
			amount:        decimal.Zero,
			setupMock:     func(m *MockBridge) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:          "negative amount is rejected before the gateway",
			amount:        decimal.NewFromInt(-5),
			setupMock:     func(m *MockBridge) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBridge := new(MockBridge)
			tt.setupMock(mockBridge)

			svc := NewPaymentService(mockBridge)
			secret, err := svc.CreatePayment(context.Background(), tt.amount)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, secret)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSecret, secret)
			}
			mockBridge.AssertExpectations(t)
		})
	}
}

func TestPaymentService_GatewayFailure(t *testing.T) {
	mockBridge := new(MockBridge)
	mockBridge.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("", errors.New("gateway unavailable"))

	svc := NewPaymentService(mockBridge)
	secret, err := svc.CreatePayment(context.Background(), decimal.NewFromInt(50))

	assert.Error(t, err)
	assert.Empty(t, secret)
	mockBridge.AssertExpectations(t)
}
