package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lifestream/internal/model"
	"lifestream/internal/pagination"
)

// FundingRepository defines funding persistence operations. Fundings are
// append-only, so there is no update or delete.
type FundingRepository interface {
	Create(ctx context.Context, funding *model.Funding) error
	ListByEmail(ctx context.Context, email string, p pagination.Params) ([]model.Funding, int64, error)
	TotalAmount(ctx context.Context) (decimal.Decimal, error)
}

type fundingRepository struct {
	db *gorm.DB
}

// NewFundingRepository builds a GORM-backed repository.
func NewFundingRepository(db *gorm.DB) FundingRepository {
	return &fundingRepository{db: db}
}

func (r *fundingRepository) Create(ctx context.Context, funding *model.Funding) error {
	return r.db.WithContext(ctx).Create(funding).Error
}

func (r *fundingRepository) ListByEmail(ctx context.Context, email string, p pagination.Params) ([]model.Funding, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Funding{}).Where("email = ?", email)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var fundings []model.Funding
	if err := q.Order("date DESC").Offset(p.Skip()).Limit(p.Limit).Find(&fundings).Error; err != nil {
		return nil, 0, err
	}
	return fundings, total, nil
}

func (r *fundingRepository) TotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Funding{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
