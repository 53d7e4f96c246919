package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole represents the role assigned to a user.
type UserRole string

const (
	RoleDonor     UserRole = "donor"
	RoleVolunteer UserRole = "volunteer"
	RoleAdmin     UserRole = "admin"
)

// UserStatus represents the account status of a user.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User represents a registered member of the platform. Email is the stable
// identity key used by every authorization guard.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'donor';index"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	Avatar       string     `json:"avatar,omitempty" gorm:"size:512"`
	BloodGroup   string     `json:"bloodGroup,omitempty" gorm:"size:8;index"`
	District     string     `json:"district,omitempty" gorm:"size:128;index"`
	Upazila      string     `json:"upazila,omitempty" gorm:"size:128"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
