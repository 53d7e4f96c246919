package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

// BlogService exposes blog domain operations.
type BlogService interface {
	Create(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context, status model.BlogStatus, p pagination.Params) ([]model.Blog, int64, error)
	ListPublished(ctx context.Context, p pagination.Params) ([]model.Blog, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BlogStatus) error
	UpdateContent(ctx context.Context, id uuid.UUID, editorEmail string, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogService struct {
	repo repository.BlogRepository
}

// NewBlogService builds a BlogService.
func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogService{repo: repo}
}

// Create stores a new post. Posts always start as drafts; publication goes
// through the status endpoint.
func (s *blogService) Create(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	blog.ID = uuid.Nil
	blog.Status = model.BlogStatusDraft

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (s *blogService) List(ctx context.Context, status model.BlogStatus, p pagination.Params) ([]model.Blog, int64, error) {
	return s.repo.List(ctx, status, p)
}

func (s *blogService) ListPublished(ctx context.Context, p pagination.Params) ([]model.Blog, int64, error) {
	return s.repo.List(ctx, model.BlogStatusPublished, p)
}

func (s *blogService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BlogStatus) error {
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update blog status: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBlogNotFound
	}
	return nil
}

// UpdateContent edits a post. Only the original author may edit; anyone else
// is rejected before the write.
func (s *blogService) UpdateContent(ctx context.Context, id uuid.UUID, editorEmail string, fields map[string]interface{}) error {
	blog, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorEmail != editorEmail {
		return apperrors.ErrForbidden
	}
	if len(fields) == 0 {
		return nil
	}

	if _, err := s.repo.UpdateContent(ctx, id, fields); err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBlogNotFound
	}
	return nil
}
