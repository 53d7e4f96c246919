package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"lifestream/internal/auth"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
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

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// newIdentityContext builds an echo context carrying a verified identity, the
// way RequireIdentity leaves it after token verification.
func newIdentityContext(t *testing.T, target, email string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &jwt.Token{Claims: &auth.Claims{Email: email, Name: "Test User"}})
	return c
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return httpErr.Code
}

func TestRequireIdentity(t *testing.T) {
	const secret = "test-secret"
	mw := RequireIdentity(secret)

	t.Run("missing credential yields 401", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(okHandler)(c)
		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
	})

	t.Run("invalid credential yields 403", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(okHandler)(c)
		assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
	})

	t.Run("valid credential passes and exposes identity", func(t *testing.T) {
		token, err := auth.NewJWTService(secret).GenerateAccessToken("test@example.com", "Test User")
		assert.NoError(t, err)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handlerErr := mw(func(c echo.Context) error {
			claims, ok := CurrentIdentity(c)
			assert.True(t, ok)
			assert.Equal(t, "test@example.com", claims.Email)
			return c.String(http.StatusOK, "ok")
		})(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireSelfQuery(t *testing.T) {
	mw := RequireSelfQuery("email")

	tests := []struct {
		name           string
		identity       string
		target         string
		expectedStatus int
	}{
		{
			name:           "matching email passes",
			identity:       "a@x.com",
			target:         "/my-donation-requests?email=a@x.com",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "mismatched email is forbidden",
			identity:       "a@x.com",
			target:         "/my-donation-requests?email=b@x.com",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing email is a client error",
			identity:       "a@x.com",
			target:         "/my-donation-requests",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newIdentityContext(t, tt.target, tt.identity)
			err := mw(okHandler)(c)

			if tt.expectedStatus == http.StatusOK {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.expectedStatus, httpStatus(t, err))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "admin passes",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").
					Return(&model.User{Email: "a@x.com", Role: model.RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "non-admin role is forbidden",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").
					Return(&model.User{Email: "a@x.com", Role: model.RoleDonor}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "no user record fails closed with forbidden",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "repository failure surfaces as server error, not denial",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			mw := RequireRole(mockRepo, model.RoleAdmin)
			c := newIdentityContext(t, "/admin-donation-requests", "a@x.com")
			err := mw(okHandler)(c)

			if tt.expectedStatus == http.StatusOK {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.expectedStatus, httpStatus(t, err))
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin-donation-requests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireRole(new(MockUserRepository), model.RoleAdmin)
	err := mw(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}
