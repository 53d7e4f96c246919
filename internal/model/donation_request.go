package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationStatus represents the lifecycle state of a donation request.
type DonationStatus string

const (
	DonationStatusPending    DonationStatus = "pending"
	DonationStatusInProgress DonationStatus = "inprogress"
	DonationStatusDone       DonationStatus = "done"
	DonationStatusCancelled  DonationStatus = "cancelled"
)

// DonationRequest represents a blood donation request posted by a requester.
// DonorName and DonorEmail stay empty until a donor confirms the request; the
// confirm transition is the only writer of those fields.
type DonationRequest struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	RequesterName  string         `json:"requesterName" gorm:"size:255;not null"`
	RequesterEmail string         `json:"requesterEmail" gorm:"size:255;not null;index"`
	RecipientName  string         `json:"recipientName,omitempty" gorm:"size:255"`
	District       string         `json:"district,omitempty" gorm:"size:128;index"`
	Upazila        string         `json:"upazila,omitempty" gorm:"size:128"`
	Hospital       string         `json:"hospital,omitempty" gorm:"size:255"`
	Address        string         `json:"address,omitempty" gorm:"size:512"`
	BloodGroup     string         `json:"bloodGroup" gorm:"size:8;not null;index"`
	DonationDate   time.Time      `json:"donationDate" gorm:"not null;index"`
	DonationTime   string         `json:"donationTime,omitempty" gorm:"size:16"`
	Message        string         `json:"message,omitempty" gorm:"type:text"`
	Status         DonationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DonorName      string         `json:"donorName,omitempty" gorm:"size:255"`
	DonorEmail     string         `json:"donorEmail,omitempty" gorm:"size:255"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (d *DonationRequest) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
