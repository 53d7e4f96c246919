package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogStatus represents the publication state of a blog post.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Blog represents a content post. Posts are created as drafts; publication is
// toggled through a dedicated status endpoint.
type Blog struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Thumbnail   string     `json:"thumbnail,omitempty" gorm:"size:512"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Status      BlogStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	AuthorName  string     `json:"authorName" gorm:"size:255;not null"`
	AuthorEmail string     `json:"authorEmail" gorm:"size:255;not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
