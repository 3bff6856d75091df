package handlers

import (
	"log"
	"net/http"

	"yourbuyer-api/dtos"
	"yourbuyer-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func (h *WishlistHandler) loadItems(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := h.DB.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func wishlistPayload(baseURL string, items []models.WishlistItem) gin.H {
	views := make([]dtos.WishlistItemView, 0, len(items))
	for _, item := range items {
		views = append(views, dtos.NewWishlistItemView(baseURL, item))
	}
	return gin.H{"items": views}
}

func (h *WishlistHandler) Get(c *gin.Context) {
	userID, _ := c.Get("user_id")

	items, err := h.loadItems(userID.(uint))
	if err != nil {
		log.Printf("get wishlist failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    wishlistPayload(requestBaseURL(c), items),
	})
}

// Add puts a product on the wishlist. Adding a product that is already
// there is not an error; the client just gets told.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, _ := c.Get("user_id")
	uid := userID.(uint)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"product_id": []string{"The product_id field is required."}},
		})
		return
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	message := "Product added to wishlist"
	var existing models.WishlistItem
	err := h.DB.Where("user_id = ? AND product_id = ?", uid, req.ProductID).First(&existing).Error
	if err == nil {
		message = "Product already in wishlist"
	} else {
		item := models.WishlistItem{UserID: uid, ProductID: req.ProductID}
		if err := h.DB.Create(&item).Error; err != nil {
			log.Printf("add to wishlist failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to wishlist"})
			return
		}
	}

	items, err := h.loadItems(uid)
	if err != nil {
		log.Printf("add to wishlist: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    wishlistPayload(requestBaseURL(c), items),
	})
}

// Remove deletes one wishlist row; DELETE /wishlist/clear is dispatched
// here by hand, same as the cart routes.
func (h *WishlistHandler) Remove(c *gin.Context) {
	if c.Param("id") == "clear" {
		h.Clear(c)
		return
	}

	userID, _ := c.Get("user_id")
	uid := userID.(uint)

	var item models.WishlistItem
	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Wishlist item not found"})
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		log.Printf("remove wishlist item failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove from wishlist"})
		return
	}

	items, err := h.loadItems(uid)
	if err != nil {
		log.Printf("remove wishlist item: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove from wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product removed from wishlist",
		"data":    wishlistPayload(requestBaseURL(c), items),
	})
}

func (h *WishlistHandler) Clear(c *gin.Context) {
	userID, _ := c.Get("user_id")

	if err := h.DB.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
		log.Printf("clear wishlist failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Wishlist cleared",
		"data":    gin.H{"items": []dtos.WishlistItemView{}},
	})
}
