package models

import (
	"time"
)

type ProductStatus string

const (
	ProductStatusInStock    ProductStatus = "in_stock"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	Price            float64        `gorm:"not null" json:"price"`
	Discount         float64        `gorm:"default:0" json:"discount"`
	Status           ProductStatus  `gorm:"default:in_stock" json:"status"`
	CategoryID       *uint          `gorm:"index" json:"category_id"`
	Category         *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images           []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// PrimaryImage resolves the cover image: the explicitly flagged primary wins,
// else the first image by sort order, else nil.
func (p *Product) PrimaryImage() *ProductImage {
	var first *ProductImage
	for i := range p.Images {
		img := &p.Images[i]
		if img.IsPrimary {
			return img
		}
		if first == nil || img.SortOrder < first.SortOrder {
			first = img
		}
	}
	return first
}
