package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifestream/internal/model"
	"lifestream/internal/pagination"
)

// UserFilter narrows a user listing to exact-match attribute values.
type UserFilter struct {
	Role       model.UserRole
	Status     model.UserStatus
	BloodGroup string
	District   string
	Upazila    string
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter UserFilter, p pagination.Params) ([]model.User, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	UpdateFieldsByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error)
	CountByRoleAndStatus(ctx context.Context, role model.UserRole, status model.UserStatus) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, p pagination.Params) ([]model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BloodGroup != "" {
		q = q.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.District != "" {
		q = q.Where("district = ?", filter.District)
	}
	if filter.Upazila != "" {
		q = q.Where("upazila = ?", filter.Upazila)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := q.Order("created_at DESC").Offset(p.Skip()).Limit(p.Limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateFields applies an allow-listed field map to the user row. Callers are
// responsible for restricting the map to mutable columns.
func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdateFieldsByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *userRepository) CountByRoleAndStatus(ctx context.Context, role model.UserRole, status model.UserStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND status = ?", role, status).
		Count(&count).Error
	return count, err
}
