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

// DonationService exposes donation request domain operations.
type DonationService interface {
	Create(ctx context.Context, req *model.DonationRequest) (*model.DonationRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error)
	ListAll(ctx context.Context) ([]model.DonationRequest, error)
	ListByRequester(ctx context.Context, email string, status model.DonationStatus, p pagination.Params) ([]model.DonationRequest, int64, error)
	ListAdmin(ctx context.Context, status model.DonationStatus, p pagination.Params) ([]model.DonationRequest, int64, error)
	ListPublicPending(ctx context.Context, bloodGroup, district, upazila string, p pagination.Params) ([]model.DonationRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DonationStatus) error
	Confirm(ctx context.Context, id uuid.UUID, donorName, donorEmail string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type donationService struct {
	repo repository.DonationRequestRepository
}

// NewDonationService builds a DonationService.
func NewDonationService(repo repository.DonationRequestRepository) DonationService {
	return &donationService{repo: repo}
}

// Create stores a new request. Status always starts at pending and the donor
// identity fields stay empty regardless of what the caller submitted; only
// the confirm transition writes them.
func (s *donationService) Create(ctx context.Context, req *model.DonationRequest) (*model.DonationRequest, error) {
	req.ID = uuid.Nil
	req.Status = model.DonationStatusPending
	req.DonorName = ""
	req.DonorEmail = ""

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create donation request: %w", err)
	}
	return req, nil
}

func (s *donationService) Get(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *donationService) ListAll(ctx context.Context) ([]model.DonationRequest, error) {
	return s.repo.ListAll(ctx)
}

func (s *donationService) ListByRequester(ctx context.Context, email string, status model.DonationStatus, p pagination.Params) ([]model.DonationRequest, int64, error) {
	if email == "" {
		return nil, 0, apperrors.ErrEmailRequired
	}
	filter := repository.DonationRequestFilter{RequesterEmail: email, Status: status}
	return s.repo.List(ctx, filter, p)
}

func (s *donationService) ListAdmin(ctx context.Context, status model.DonationStatus, p pagination.Params) ([]model.DonationRequest, int64, error) {
	return s.repo.List(ctx, repository.DonationRequestFilter{Status: status}, p)
}

// ListPublicPending lists open requests for the public browse page.
func (s *donationService) ListPublicPending(ctx context.Context, bloodGroup, district, upazila string, p pagination.Params) ([]model.DonationRequest, int64, error) {
	filter := repository.DonationRequestFilter{
		Status:     model.DonationStatusPending,
		BloodGroup: bloodGroup,
		District:   district,
		Upazila:    upazila,
	}
	return s.repo.List(ctx, filter, p)
}

func (s *donationService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DonationStatus) error {
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// Confirm performs the pending -> inprogress transition for the given donor.
// Zero modified rows means the request is missing or was already claimed,
// both reported as not found.
func (s *donationService) Confirm(ctx context.Context, id uuid.UUID, donorName, donorEmail string) error {
	affected, err := s.repo.Confirm(ctx, id, donorName, donorEmail)
	if err != nil {
		return fmt.Errorf("confirm donation: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (s *donationService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete donation request: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (s *donationService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
