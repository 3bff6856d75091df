package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"yourbuyer-api/dtos"
	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// List is the public catalog endpoint with filtering, sorting and
// pagination.
func (h *ProductHandler) List(c *gin.Context) {
	query := h.DB.Model(&models.Product{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	switch c.Query("sort") {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "name_asc":
		query = query.Order("name ASC")
	case "name_desc":
		query = query.Order("name DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "16"))
	if perPage < 1 {
		perPage = 1
	}
	if perPage > 100 {
		perPage = 100
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("list products: count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Images").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&products).Error; err != nil {
		log.Printf("list products failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	baseURL := requestBaseURL(c)
	views := make([]dtos.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, dtos.NewProductView(baseURL, p, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"products":   views,
			"pagination": dtos.NewPagination(page, perPage, total),
		},
	})
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	var product models.Product
	if err := h.DB.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"product": dtos.NewProductView(requestBaseURL(c), product, true)},
	})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name             string  `json:"name" binding:"required"`
		Slug             string  `json:"slug"`
		Description      string  `json:"description"`
		ShortDescription string  `json:"short_description"`
		Price            float64 `json:"price" binding:"required,min=0"`
		Discount         float64 `json:"discount" binding:"omitempty,min=0,max=100"`
		Status           string  `json:"status" binding:"omitempty,oneof=in_stock out_of_stock"`
		CategoryID       *uint   `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "The given data was invalid.",
				"errors":  gin.H{"category_id": []string{"The selected category_id is invalid."}},
			})
			return
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	slug, err := utils.UniqueProductSlug(h.DB, slug, 0)
	if err != nil {
		log.Printf("create product: slug generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	status := models.ProductStatus(req.Status)
	if status == "" {
		status = models.ProductStatusInStock
	}

	product := models.Product{
		Name:             req.Name,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		Discount:         req.Discount,
		Status:           status,
		CategoryID:       req.CategoryID,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		log.Printf("create product failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created",
		"data":    gin.H{"product": dtos.NewProductView(requestBaseURL(c), product, false)},
	})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var product models.Product
	if err := h.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	var req struct {
		Name             *string  `json:"name"`
		Slug             *string  `json:"slug"`
		Description      *string  `json:"description"`
		ShortDescription *string  `json:"short_description"`
		Price            *float64 `json:"price" binding:"omitempty,min=0"`
		Discount         *float64 `json:"discount" binding:"omitempty,min=0,max=100"`
		Status           *string  `json:"status" binding:"omitempty,oneof=in_stock out_of_stock"`
		CategoryID       *uint    `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
		// Renaming regenerates the slug unless the caller pins one
		if req.Slug == nil {
			slug, err := utils.UniqueProductSlug(h.DB, utils.Slugify(*req.Name), product.ID)
			if err != nil {
				log.Printf("update product: slug generation failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
				return
			}
			product.Slug = slug
		}
	}
	if req.Slug != nil {
		slug, err := utils.UniqueProductSlug(h.DB, *req.Slug, product.ID)
		if err != nil {
			log.Printf("update product: slug generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
			return
		}
		product.Slug = slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Status != nil {
		product.Status = models.ProductStatus(*req.Status)
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "The given data was invalid.",
				"errors":  gin.H{"category_id": []string{"The selected category_id is invalid."}},
			})
			return
		}
		product.CategoryID = req.CategoryID
	}

	if err := h.DB.Save(&product).Error; err != nil {
		log.Printf("update product failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated",
		"data":    gin.H{"product": dtos.NewProductView(requestBaseURL(c), product, false)},
	})
}

// Delete removes the product's image files from disk, then the image rows
// and the product itself.
func (h *ProductHandler) Delete(c *gin.Context) {
	var product models.Product
	if err := h.DB.Preload("Images").Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	for _, img := range product.Images {
		path := filepath.Join(utils.StorageRoot(), img.ImagePath)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("delete product: remove file %s failed: %v", path, err)
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		log.Printf("delete product failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
