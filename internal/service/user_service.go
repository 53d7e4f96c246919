package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

const bcryptCost = 10

// UserService exposes user domain operations.
type UserService interface {
	Register(ctx context.Context, user *model.User, password string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetRole(ctx context.Context, email string) (model.UserRole, error)
	List(ctx context.Context, filter repository.UserFilter, p pagination.Params) ([]model.User, int64, error)
	ListPublicDonors(ctx context.Context, bloodGroup, district, upazila string, p pagination.Params) ([]model.User, int64, error)
	AdminUpdate(ctx context.Context, id uuid.UUID, role model.UserRole, status model.UserStatus) error
	UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error
	CountActiveDonors(ctx context.Context) (int64, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a user keyed by email. Registration is idempotent: an
// existing email returns the stored record together with ErrUserExists so the
// handler can answer without creating a duplicate.
func (s *userService) Register(ctx context.Context, user *model.User, password string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return existing, apperrors.ErrUserExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if user.Role == "" {
		user.Role = model.RoleDonor
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetRole(ctx context.Context, email string) (model.UserRole, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter, p pagination.Params) ([]model.User, int64, error) {
	return s.repo.List(ctx, filter, p)
}

// ListPublicDonors lists active donors for the public search page, optionally
// narrowed by blood group and location.
func (s *userService) ListPublicDonors(ctx context.Context, bloodGroup, district, upazila string, p pagination.Params) ([]model.User, int64, error) {
	filter := repository.UserFilter{
		Role:       model.RoleDonor,
		Status:     model.UserStatusActive,
		BloodGroup: bloodGroup,
		District:   district,
		Upazila:    upazila,
	}
	return s.repo.List(ctx, filter, p)
}

// AdminUpdate mutates role and/or status of a user. Only these two columns
// are writable on this path; empty values are skipped.
func (s *userService) AdminUpdate(ctx context.Context, id uuid.UUID, role model.UserRole, status model.UserStatus) error {
	fields := map[string]interface{}{}
	if role != "" {
		fields["role"] = role
	}
	if status != "" {
		fields["status"] = status
	}
	if len(fields) == 0 {
		return nil
	}

	affected, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfile applies profile fields to the user's own record. The caller
// builds the map from the allow-listed profile columns only.
func (s *userService) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	affected, err := s.repo.UpdateFieldsByEmail(ctx, email, fields)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (s *userService) CountActiveDonors(ctx context.Context) (int64, error) {
	return s.repo.CountByRoleAndStatus(ctx, model.RoleDonor, model.UserStatusActive)
}
