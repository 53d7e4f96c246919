package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/pagination"
	"lifestream/internal/repository"
)

// FundingService exposes funding domain operations.
type FundingService interface {
	Create(ctx context.Context, funding *model.Funding) (*model.Funding, error)
	ListByEmail(ctx context.Context, email string, p pagination.Params) ([]model.Funding, int64, error)
	TotalAmount(ctx context.Context) (decimal.Decimal, error)
}

type fundingService struct {
	repo repository.FundingRepository
}

// NewFundingService builds a FundingService.
func NewFundingService(repo repository.FundingRepository) FundingService {
	return &fundingService{repo: repo}
}

// Create appends a funding record. The amount must be positive.
func (s *fundingService) Create(ctx context.Context, funding *model.Funding) (*model.Funding, error) {
	if funding.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}
	if funding.Date.IsZero() {
		funding.Date = time.Now()
	}

	if err := s.repo.Create(ctx, funding); err != nil {
		return nil, fmt.Errorf("create funding: %w", err)
	}
	return funding, nil
}

func (s *fundingService) ListByEmail(ctx context.Context, email string, p pagination.Params) ([]model.Funding, int64, error) {
	if email == "" {
		return nil, 0, apperrors.ErrEmailRequired
	}
	return s.repo.ListByEmail(ctx, email, p)
}

func (s *fundingService) TotalAmount(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalAmount(ctx)
}
