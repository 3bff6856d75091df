package models

import (
	"time"
)

// Category ids are supplied by the admin client, not auto-generated; the
// storefront relies on stable, human-chosen category numbers.
type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Products  []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
