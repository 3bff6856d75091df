package models

import (
	"time"
)

// ProductImage stores image_path relative to the storage root; absolute URLs
// are assembled per request from the caller's own scheme and host.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	ImagePath string    `gorm:"not null" json:"image_path"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
