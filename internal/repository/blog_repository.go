package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifestream/internal/model"
	"lifestream/internal/pagination"
)

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context, status model.BlogStatus, p pagination.Params) ([]model.Blog, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BlogStatus) (int64, error)
	UpdateContent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository builds a GORM-backed repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// List returns one page of posts sorted by creation time, latest first. An
// empty status lists posts in any state.
func (r *blogRepository) List(ctx context.Context, status model.BlogStatus, p pagination.Params) ([]model.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Blog{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	if err := q.Order("created_at DESC").Offset(p.Skip()).Limit(p.Limit).Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BlogStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Blog{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// UpdateContent applies an allow-listed field map to the post. Callers
// restrict the map to title, thumbnail and content.
func (r *blogRepository) UpdateContent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Blog{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Blog{})
	return res.RowsAffected, res.Error
}
