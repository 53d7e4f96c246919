package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifestream/internal/model"
	"lifestream/internal/pagination"
)

// DonationRequestFilter narrows a donation request listing to exact-match
// attribute values. Empty fields are ignored.
type DonationRequestFilter struct {
	RequesterEmail string
	Status         model.DonationStatus
	BloodGroup     string
	District       string
	Upazila        string
}

// DonationRequestRepository defines donation request persistence operations.
type DonationRequestRepository interface {
	Create(ctx context.Context, req *model.DonationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error)
	ListAll(ctx context.Context) ([]model.DonationRequest, error)
	List(ctx context.Context, filter DonationRequestFilter, p pagination.Params) ([]model.DonationRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DonationStatus) (int64, error)
	Confirm(ctx context.Context, id uuid.UUID, donorName, donorEmail string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type donationRequestRepository struct {
	db *gorm.DB
}

// NewDonationRequestRepository builds a GORM-backed repository.
func NewDonationRequestRepository(db *gorm.DB) DonationRequestRepository {
	return &donationRequestRepository{db: db}
}

func (r *donationRequestRepository) Create(ctx context.Context, req *model.DonationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *donationRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	var req model.DonationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *donationRequestRepository) ListAll(ctx context.Context) ([]model.DonationRequest, error) {
	var reqs []model.DonationRequest
	if err := r.db.WithContext(ctx).Order("donation_date DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// List returns one page of matching requests sorted by donation date, latest
// first, plus the total count of matches for page metadata.
func (r *donationRequestRepository) List(ctx context.Context, filter DonationRequestFilter, p pagination.Params) ([]model.DonationRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.DonationRequest{})
	if filter.RequesterEmail != "" {
		q = q.Where("requester_email = ?", filter.RequesterEmail)
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

	var reqs []model.DonationRequest
	if err := q.Order("donation_date DESC").Offset(p.Skip()).Limit(p.Limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *donationRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DonationStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DonationRequest{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// Confirm performs the pending -> inprogress transition and records the donor
// identity in the same update. The status predicate makes the write a weak
// compare-and-swap: a request that is missing or no longer pending modifies
// zero rows.
func (r *donationRequestRepository) Confirm(ctx context.Context, id uuid.UUID, donorName, donorEmail string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DonationRequest{}).
		Where("id = ? AND status = ?", id, model.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":      model.DonationStatusInProgress,
			"donor_name":  donorName,
			"donor_email": donorEmail,
		})
	return res.RowsAffected, res.Error
}

func (r *donationRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DonationRequest{})
	return res.RowsAffected, res.Error
}

func (r *donationRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DonationRequest{}).Count(&count).Error
	return count, err
}
