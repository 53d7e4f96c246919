package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

// MockDonationRequestRepository is a mock implementation of DonationRequestRepository.
type MockDonationRequestRepository struct {
	mock.Mock
}

func (m *MockDonationRequestRepository) Create(ctx context.Context, req *model.DonationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDonationRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonationRequest), args.Error(1)
}

func (m *MockDonationRequestRepository) ListAll(ctx context.Context) ([]model.DonationRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DonationRequest), args.Error(1)
}

func (m *MockDonationRequestRepository) List(ctx context.Context, filter repository.DonationRequestFilter, p pagination.Params) ([]model.DonationRequest, int64, error) {
	args := m.Called(ctx, filter, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.DonationRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DonationStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRequestRepository) Confirm(ctx context.Context, id uuid.UUID, donorName, donorEmail string) (int64, error) {
	args := m.Called(ctx, id, donorName, donorEmail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRequestRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestDonationService_Create(t *testing.T) {
	mockRepo := new(MockDonationRequestRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.DonationRequest")).Return(nil)

	svc := NewDonationService(mockRepo)
	created, err := svc.Create(context.Background(), &model.DonationRequest{
		RequesterName:  "Rahim Uddin",
		RequesterEmail: "a@x.com",
		BloodGroup:     "A+",
		DonationDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		// A caller-supplied status or donor identity must not survive creation.
		Status:     model.DonationStatusDone,
		DonorName:  "Sneaky",
		DonorEmail: "sneaky@x.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.DonationStatusPending, created.Status)
	assert.Empty(t, created.DonorName)
	assert.Empty(t, created.DonorEmail)
	mockRepo.AssertExpectations(t)
}

func TestDonationService_Confirm(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockDonationRequestRepository)
		expectedError error
	}{
		{
			name: "successful confirmation",
			setupMock: func(m *MockDonationRequestRepository) {
				m.On("Confirm", mock.Anything, id, "Rahim Uddin", "rahim@example.com").Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "already confirmed or missing reports not found",
			setupMock: func(m *MockDonationRequestRepository) {
				m.On("Confirm", mock.Anything, id, "Rahim Uddin", "rahim@example.com").Return(int64(0), nil)
			},
			expectedError: apperrors.ErrRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDonationRequestRepository)
			tt.setupMock(mockRepo)

			svc := NewDonationService(mockRepo)
			err := svc.Confirm(context.Background(), id, "Rahim Uddin", "rahim@example.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDonationService_ListByRequester(t *testing.T) {
	t.Run("missing email is a client error", func(t *testing.T) {
		mockRepo := new(MockDonationRequestRepository)
		svc := NewDonationService(mockRepo)

		_, _, err := svc.ListByRequester(context.Background(), "", "", pagination.Params{Page: 1, Limit: 5})
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)
	})

	t.Run("filters by requester email and status", func(t *testing.T) {
		mockRepo := new(MockDonationRequestRepository)
		p := pagination.Params{Page: 1, Limit: 5}
		expectedFilter := repository.DonationRequestFilter{
			RequesterEmail: "a@x.com",
			Status:         model.DonationStatusPending,
		}
		mockRepo.On("List", mock.Anything, expectedFilter, p).
			Return([]model.DonationRequest{{RequesterEmail: "a@x.com"}}, int64(1), nil)

		svc := NewDonationService(mockRepo)
		reqs, total, err := svc.ListByRequester(context.Background(), "a@x.com", model.DonationStatusPending, p)

		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, int64(1), total)
		mockRepo.AssertExpectations(t)
	})
}

func TestDonationService_UpdateStatus(t *testing.T) {
	id := uuid.New()

	mockRepo := new(MockDonationRequestRepository)
	mockRepo.On("UpdateStatus", mock.Anything, id, model.DonationStatusDone).Return(int64(0), nil)

	svc := NewDonationService(mockRepo)
	err := svc.UpdateStatus(context.Background(), id, model.DonationStatusDone)

	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	mockRepo.AssertExpectations(t)
}

func TestDonationService_Delete(t *testing.T) {
	id := uuid.New()

	mockRepo := new(MockDonationRequestRepository)
	mockRepo.On("Delete", mock.Anything, id).Return(int64(1), nil)

	svc := NewDonationService(mockRepo)
	assert.NoError(t, svc.Delete(context.Background(), id))
	mockRepo.AssertExpectations(t)
}
