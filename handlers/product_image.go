package handlers

import (
	"fmt"
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

type ProductImageHandler struct {
	DB *gorm.DB
}

// Upload accepts 1-10 multipart images for a product. primary_index marks
// which of the uploaded files becomes primary; when the product has no
// images yet and no index is given, the first upload becomes primary.
func (h *ProductImageHandler) Upload(c *gin.Context) {
	var product models.Product
	if err := h.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"images": []string{"The images field is required."}},
		})
		return
	}

	files := form.File["images[]"]
	if len(files) == 0 {
		files = form.File["images"]
	}
	if len(files) == 0 || len(files) > 10 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  gin.H{"images": []string{"Between 1 and 10 images are required."}},
		})
		return
	}

	for _, fh := range files {
		if err := utils.ValidateImageUpload(fh); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "The given data was invalid.",
				"errors":  gin.H{"images": []string{err.Error()}},
			})
			return
		}
	}

	primaryIndex := -1
	if raw := c.PostForm("primary_index"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 && v < len(files) {
			primaryIndex = v
		}
	}

	var existingCount int64
	h.DB.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&existingCount)
	if existingCount == 0 && primaryIndex == -1 {
		primaryIndex = 0
	}

	var maxSort int
	h.DB.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).
		Select("COALESCE(MAX(sort_order), -1)").Scan(&maxSort)

	dir := filepath.Join(utils.StorageRoot(), "products", strconv.FormatUint(uint64(product.ID), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("upload images: mkdir %s failed: %v", dir, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload images"})
		return
	}

	var images []models.ProductImage
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if primaryIndex >= 0 {
			if err := tx.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}

		for i, fh := range files {
			filename := utils.GenerateImageFilename(fh.Filename)
			relPath := fmt.Sprintf("products/%d/%s", product.ID, filename)
			if err := c.SaveUploadedFile(fh, filepath.Join(utils.StorageRoot(), relPath)); err != nil {
				return err
			}

			img := models.ProductImage{
				ProductID: product.ID,
				ImagePath: relPath,
				IsPrimary: i == primaryIndex,
				SortOrder: maxSort + 1 + i,
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			images = append(images, img)
		}
		return nil
	})
	if err != nil {
		log.Printf("upload images failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload images"})
		return
	}

	baseURL := requestBaseURL(c)
	views := make([]dtos.ProductImageView, 0, len(images))
	for _, img := range images {
		views = append(views, dtos.NewProductImageView(baseURL, img))
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Images uploaded",
		"data":    gin.H{"images": views},
	})
}

// SetPrimary flags one image as primary. All other flags for the product
// are cleared first, so at most one row ever carries the flag.
func (h *ProductImageHandler) SetPrimary(c *gin.Context) {
	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", c.Param("imageId"), c.Param("id")).
		First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).Where("product_id = ?", image.ProductID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("is_primary", true).Error
	})
	if err != nil {
		log.Printf("set primary image failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Primary image updated"})
}

// Delete removes the file from disk, then the row.
func (h *ProductImageHandler) Delete(c *gin.Context) {
	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", c.Param("imageId"), c.Param("id")).
		First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
		return
	}

	path := filepath.Join(utils.StorageRoot(), image.ImagePath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("delete image: remove file %s failed: %v", path, err)
	}

	if err := h.DB.Delete(&image).Error; err != nil {
		log.Printf("delete image failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}
