package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
)

// MockFundingRepository is a mock implementation of FundingRepository.
type MockFundingRepository struct {
	mock.Mock
}

func (m *MockFundingRepository) Create(ctx context.Context, funding *model.Funding) error {
	args := m.Called(ctx, funding)
	return args.Error(0)
}

func (m *MockFundingRepository) ListByEmail(ctx context.Context, email string, p pagination.Params) ([]model.Funding, int64, error) {
	args := m.Called(ctx, email, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Funding), args.Get(1).(int64), args.Error(2)
}

func (m *MockFundingRepository) TotalAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestFundingService_Create(t *testing.T) {
	tests := []struct {
		name          string
		amount        decimal.Decimal
		setupMock     func(*MockFundingRepository)
		expectedError error
	}{
		{
			name:   "successful funding",
			amount: decimal.NewFromInt(25),
			setupMock: func(m *MockFundingRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Funding")).Return(nil)
			},
		},
		{
			name:          "zero amount rejected",
			amount:        decimal.Zero,
			setupMock:     func(m *MockFundingRepository) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:          "negative amount rejected",
			amount:        decimal.NewFromInt(-10),
			setupMock:     func(m *MockFundingRepository) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFundingRepository)
			tt.setupMock(mockRepo)

			svc := NewFundingService(mockRepo)
			created, err := svc.Create(context.Background(), &model.Funding{
				Name:   "Rahim Uddin",
				Email:  "rahim@example.com",
				Amount: tt.amount,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				// Missing date defaults to now.
				assert.False(t, created.Date.IsZero())
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFundingService_ListByEmail(t *testing.T) {
	t.Run("missing email is a client error", func(t *testing.T) {
		svc := NewFundingService(new(MockFundingRepository))
		_, _, err := svc.ListByEmail(context.Background(), "", pagination.Params{Page: 1, Limit: 10})
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)
	})

	t.Run("returns page and total", func(t *testing.T) {
		mockRepo := new(MockFundingRepository)
		p := pagination.Params{Page: 2, Limit: 10}
		mockRepo.On("ListByEmail", mock.Anything, "rahim@example.com", p).
			Return([]model.Funding{{Email: "rahim@example.com"}}, int64(11), nil)

		svc := NewFundingService(mockRepo)
		fundings, total, err := svc.ListByEmail(context.Background(), "rahim@example.com", p)

		assert.NoError(t, err)
		assert.Len(t, fundings, 1)
		assert.Equal(t, int64(11), total)
		mockRepo.AssertExpectations(t)
	})
}
