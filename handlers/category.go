package handlers

import (
	"log"
	"net/http"

	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		log.Printf("list categories failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"categories": categories},
	})
}

// Create takes a client-supplied integer id; ids are managed by the admin
// panel, not the database.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		ID   uint   `json:"id" binding:"required"`
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	var existing models.Category
	if err := h.DB.First(&existing, req.ID).Error; err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"id": []string{"The id has already been taken."}},
		})
		return
	}

	category := models.Category{ID: req.ID, Name: req.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		log.Printf("create category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created",
		"data":    gin.H{"category": category},
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var category models.Category
	if err := h.DB.Where("id = ?", c.Param("id")).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	category.Name = req.Name
	if err := h.DB.Save(&category).Error; err != nil {
		log.Printf("update category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated",
		"data":    gin.H{"category": category},
	})
}

// Delete detaches the category's products rather than deleting them.
func (h *CategoryHandler) Delete(c *gin.Context) {
	var category models.Category
	if err := h.DB.Where("id = ?", c.Param("id")).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		log.Printf("delete category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
