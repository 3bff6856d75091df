package handlers

import (
	"log"
	"net/http"

	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

// Create places an order from the identity's cart. Total, item snapshot
// and cart cleanup happen in one transaction; price_at_order freezes the
// product price at checkout time.
func (h *OrderHandler) Create(c *gin.Context) {
	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		identityRequired(c)
		return
	}

	var req struct {
		Name               string `json:"name" binding:"required"`
		Surname            string `json:"surname" binding:"required"`
		Middlename         string `json:"middlename"`
		Phone              string `json:"phone" binding:"required"`
		DeliveryCity       string `json:"delivery_city" binding:"required"`
		DeliveryDepartment string `json:"delivery_department" binding:"required"`
		DontCall           bool   `json:"dont_call"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	var cartItems []models.CartItem
	if err := identity.Scope(h.DB).Preload("Product").Find(&cartItems).Error; err != nil {
		log.Printf("create order: load cart failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	userID, _ := identity.Columns()

	var order models.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range cartItems {
			total += item.Product.Price * float64(item.Quantity)
		}

		order = models.Order{
			UserID:             userID,
			Name:               req.Name,
			Surname:            req.Surname,
			Middlename:         req.Middlename,
			Phone:              req.Phone,
			DeliveryCity:       req.DeliveryCity,
			DeliveryDepartment: req.DeliveryDepartment,
			DontCall:           req.DontCall,
			Status:             models.OrderStatusPending,
			TotalAmount:        total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cartItems {
			orderItem := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				PriceAtOrder: item.Product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		return identity.Scope(tx).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		log.Printf("create order failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	if err := h.DB.Preload("Items").Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		log.Printf("create order: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed",
		"data":    gin.H{"order": order},
	})
}

// List backs the admin orders screen.
func (h *OrderHandler) List(c *gin.Context) {
	var orders []models.Order
	if err := h.DB.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		log.Printf("list orders failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"orders": orders},
	})
}
