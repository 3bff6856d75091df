package models

import (
	"time"
)

type OrderStatus string

// Orders are created pending; no further transitions are implemented.
const (
	OrderStatusPending OrderStatus = "pending"
)

// Order snapshots the customer and delivery details entered at checkout.
// UserID stays nil for orders placed from an anonymous cart.
type Order struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	UserID             *uint       `gorm:"index" json:"user_id"`
	User               *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name               string      `gorm:"not null" json:"name"`
	Surname            string      `gorm:"not null" json:"surname"`
	Middlename         string      `json:"middlename"`
	Phone              string      `gorm:"not null" json:"phone"`
	DeliveryCity       string      `gorm:"not null" json:"delivery_city"`
	DeliveryDepartment string      `gorm:"not null" json:"delivery_department"`
	DontCall           bool        `gorm:"default:false" json:"dont_call"`
	Status             OrderStatus `gorm:"default:pending" json:"status"`
	TotalAmount        float64     `gorm:"not null" json:"total_amount"`
	Items              []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// OrderItem copies the product price at checkout into PriceAtOrder so the
// historical order value is immune to later price changes.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Product      Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder float64   `gorm:"not null" json:"price_at_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
