package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter, p pagination.Params) ([]model.User, int64, error) {
	args := m.Called(ctx, filter, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateFieldsByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, email, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRoleAndStatus(ctx context.Context, role model.UserRole, status model.UserStatus) (int64, error) {
	args := m.Called(ctx, role, status)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "repeated registration is a no-op",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
				// Create must not be called.
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.Register(context.Background(), &model.User{Name: "Test User", Email: tt.email}, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, model.RoleDonor, user.Role)
				assert.Equal(t, model.UserStatusActive, user.Status)
				assert.NotEmpty(t, user.PasswordHash)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetRole(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedRole  model.UserRole
		expectedError error
	}{
		{
			name: "existing user",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").
					Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name: "missing user",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			role, err := svc.GetRole(context.Background(), "admin@example.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRole, role)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_AdminUpdate(t *testing.T) {
	id := uuid.New()

	t.Run("only role and status reach the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdateFields", mock.Anything, id, map[string]interface{}{
			"role":   model.RoleVolunteer,
			"status": model.UserStatusBlocked,
		}).Return(int64(1), nil)

		svc := NewUserService(mockRepo)
		err := svc.AdminUpdate(context.Background(), id, model.RoleVolunteer, model.UserStatusBlocked)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user reports not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(int64(0), nil)

		svc := NewUserService(mockRepo)
		err := svc.AdminUpdate(context.Background(), id, model.RoleAdmin, "")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_ListPublicDonors(t *testing.T) {
	mockRepo := new(MockUserRepository)
	p := pagination.Params{Page: 1, Limit: 10}
	expectedFilter := repository.UserFilter{
		Role:       model.RoleDonor,
		Status:     model.UserStatusActive,
		BloodGroup: "A+",
		District:   "Dhaka",
	}
	mockRepo.On("List", mock.Anything, expectedFilter, p).
		Return([]model.User{{Email: "rahim@example.com"}}, int64(1), nil)

	svc := NewUserService(mockRepo)
	users, total, err := svc.ListPublicDonors(context.Background(), "A+", "Dhaka", "", p)

	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}
