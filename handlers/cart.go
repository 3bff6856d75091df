package handlers

import (
	"log"
	"net/http"

	"yourbuyer-api/dtos"
	"yourbuyer-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

func identityRequired(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Anonymous token or authentication required",
	})
}

func (h *CartHandler) loadItems(identity models.CartIdentity) ([]models.CartItem, error) {
	var items []models.CartItem
	err := identity.Scope(h.DB).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func cartPayload(baseURL string, items []models.CartItem) gin.H {
	views := make([]dtos.CartItemView, 0, len(items))
	var total float64
	for _, item := range items {
		view := dtos.NewCartItemView(baseURL, item)
		total += view.Subtotal
		views = append(views, view)
	}
	return gin.H{"cart_items": views, "total": total}
}

// Get lists the cart. A request with no identity at all is a first-time
// visitor, so it gets an empty cart instead of an error.
func (h *CartHandler) Get(c *gin.Context) {
	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"cart_items": []dtos.CartItemView{}, "total": 0.0},
		})
		return
	}

	items, err := h.loadItems(identity)
	if err != nil {
		log.Printf("get cart failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartPayload(requestBaseURL(c), items),
	})
}

// Add upserts a cart row. An existing (identity, product) row gets an
// atomic quantity increment so concurrent adds cannot lose updates.
func (h *CartHandler) Add(c *gin.Context) {
	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		identityRequired(c)
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"product_id": []string{"The product_id field is required."}},
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		result := identity.Scope(tx.Model(&models.CartItem{})).
			Where("product_id = ?", req.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", req.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		userID, anonToken := identity.Columns()
		item := models.CartItem{
			UserID:         userID,
			AnonymousToken: anonToken,
			ProductID:      req.ProductID,
			Quantity:       req.Quantity,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		log.Printf("add to cart failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart"})
		return
	}

	items, err := h.loadItems(identity)
	if err != nil {
		log.Printf("add to cart: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added to cart",
		"data":    cartPayload(requestBaseURL(c), items),
	})
}

// Update sets the quantity of one cart row, scoped to the identity so a
// client cannot touch someone else's rows by id.
func (h *CartHandler) Update(c *gin.Context) {
	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		identityRequired(c)
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"quantity": []string{"The quantity must be at least 1."}},
		})
		return
	}

	var item models.CartItem
	if err := identity.Scope(h.DB).Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
		return
	}

	if err := h.DB.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		log.Printf("update cart item failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	items, err := h.loadItems(identity)
	if err != nil {
		log.Printf("update cart: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart updated",
		"data":    cartPayload(requestBaseURL(c), items),
	})
}

// Remove deletes one cart row. DELETE /cart/clear lands here too because
// gin cannot register a static route next to the :id parameter, so "clear"
// is dispatched by hand.
func (h *CartHandler) Remove(c *gin.Context) {
	if c.Param("id") == "clear" {
		h.Clear(c)
		return
	}

	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		identityRequired(c)
		return
	}

	var item models.CartItem
	if err := identity.Scope(h.DB).Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		log.Printf("remove cart item failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove from cart"})
		return
	}

	items, err := h.loadItems(identity)
	if err != nil {
		log.Printf("remove cart item: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product removed from cart",
		"data":    cartPayload(requestBaseURL(c), items),
	})
}

func (h *CartHandler) Clear(c *gin.Context) {
	identity, ok := resolveCartIdentity(c, h.DB)
	if !ok {
		identityRequired(c)
		return
	}

	if err := identity.Scope(h.DB).Delete(&models.CartItem{}).Error; err != nil {
		log.Printf("clear cart failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
		"data":    gin.H{"cart_items": []dtos.CartItemView{}, "total": 0.0},
	})
}

// Merge folds an anonymous cart into the authenticated user's cart. For
// each anonymous row: an existing user row for the same product absorbs the
// quantity, otherwise the row is re-parented to the user. Merging a token
// twice is a no-op.
func (h *CartHandler) Merge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated."})
		return
	}
	uid := userID.(uint)

	var req struct {
		AnonymousToken string `json:"anonymous_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"anonymous_token": []string{"The anonymous_token field is required."}},
		})
		return
	}

	var anonItems []models.CartItem
	if err := h.DB.Where("anonymous_token = ?", req.AnonymousToken).Find(&anonItems).Error; err != nil {
		log.Printf("merge cart: load anonymous items failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to merge cart"})
		return
	}

	if len(anonItems) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "No items to merge"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, anon := range anonItems {
			result := tx.Model(&models.CartItem{}).
				Where("user_id = ? AND product_id = ?", uid, anon.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", anon.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				continue
			}

			// No user row for this product; take the anonymous row over
			if err := tx.Model(&models.CartItem{}).Where("id = ?", anon.ID).
				Updates(map[string]interface{}{
					"user_id":         uid,
					"anonymous_token": nil,
				}).Error; err != nil {
				return err
			}
		}

		// Rows absorbed into existing user rows still carry the token
		return tx.Where("anonymous_token = ?", req.AnonymousToken).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		log.Printf("merge cart failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to merge cart"})
		return
	}

	items, err := h.loadItems(models.UserIdentity(uid))
	if err != nil {
		log.Printf("merge cart: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to merge cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart merged",
		"data":    cartPayload(requestBaseURL(c), items),
	})
}
