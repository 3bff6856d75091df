package models

import (
	"time"
)

// CartItem belongs to exactly one of a registered user or an anonymous
// visitor; the pair of nullable columns is the storage encoding of
// CartIdentity. The two composite unique indexes keep one row per product
// per identity.
type CartItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `gorm:"uniqueIndex:idx_cart_user_product" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	AnonymousToken *string   `gorm:"uniqueIndex:idx_cart_anon_product;index" json:"anonymous_token"`
	ProductID      uint      `gorm:"not null;uniqueIndex:idx_cart_user_product;uniqueIndex:idx_cart_anon_product" json:"product_id"`
	Product        Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
