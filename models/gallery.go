package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryItem represents a showcase photo on the public gallery page
type GalleryItem struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Category    string        `json:"category"` // e.g. "birthday", "wedding", "pastry"
	ImageS3Key  string        `gorm:"not null" json:"image_s3_key"`
	ImageURL    string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL
	Status      ContentStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the GalleryItem model
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// BeforeCreate assigns a UUID to new gallery items
func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
