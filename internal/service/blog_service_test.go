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
)

// MockBlogRepository is a mock implementation of BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, status model.BlogStatus, p pagination.Params) ([]model.Blog, int64, error) {
	args := m.Called(ctx, status, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BlogStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) UpdateContent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestBlogService_Create(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(nil)

	svc := NewBlogService(mockRepo)
	created, err := svc.Create(context.Background(), &model.Blog{
		Title:       "Why donate",
		Content:     "...",
		AuthorEmail: "sadia@example.com",
		// Caller-supplied status must not survive creation.
		Status: model.BlogStatusPublished,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.BlogStatusDraft, created.Status)
	mockRepo.AssertExpectations(t)
}

func TestBlogService_UpdateContent(t *testing.T) {
	id := uuid.New()
	stored := &model.Blog{ID: id, AuthorEmail: "author@example.com"}
	fields := map[string]interface{}{"title": "Updated"}

	tests := []struct {
		name          string
		editorEmail   string
		setupMock     func(*MockBlogRepository)
		expectedError error
	}{
		{
			name:        "author may edit",
			editorEmail: "author@example.com",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, id).Return(stored, nil)
				m.On("UpdateContent", mock.Anything, id, fields).Return(int64(1), nil)
			},
		},
		{
			name:        "non-author is rejected before the write",
			editorEmail: "intruder@example.com",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, id).Return(stored, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:        "missing post reports not found",
			editorEmail: "author@example.com",
			setupMock: func(m *MockBlogRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBlogNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.setupMock(mockRepo)

			svc := NewBlogService(mockRepo)
			err := svc.UpdateContent(context.Background(), id, tt.editorEmail, fields)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBlogService_UpdateStatus(t *testing.T) {
	id := uuid.New()

	mockRepo := new(MockBlogRepository)
	mockRepo.On("UpdateStatus", mock.Anything, id, model.BlogStatusPublished).Return(int64(0), nil)

	svc := NewBlogService(mockRepo)
	err := svc.UpdateStatus(context.Background(), id, model.BlogStatusPublished)

	assert.ErrorIs(t, err, apperrors.ErrBlogNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBlogService_ListPublished(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	p := pagination.Params{Page: 1, Limit: 10}
	mockRepo.On("List", mock.Anything, model.BlogStatusPublished, p).
		Return([]model.Blog{{Title: "Why donate"}}, int64(1), nil)

	svc := NewBlogService(mockRepo)
	blogs, total, err := svc.ListPublished(context.Background(), p)

	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}
