package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Funding represents a monetary contribution by a donor. Records are
// append-only; there is no update or delete path.
type Funding struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Email     string          `json:"email" gorm:"size:255;not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Date      time.Time       `json:"date" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Funding) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
