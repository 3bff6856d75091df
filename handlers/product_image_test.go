package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"yourbuyer-api/models"
)

func TestUploadImagesFirstBecomesPrimary(t *testing.T) {
	t.Setenv("STORAGE_PATH", t.TempDir())
	db := freshDB()
	router := setupProductRouter(db)
	_, token := seedTestUser(db, "admin@test.com")
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/products/"+itoa(product.ID)+"/images",
		nil, "images[]", []string{"a.jpg", "b.jpg"}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var images []models.ProductImage
	db.Where("product_id = ?", product.ID).Order("sort_order ASC").Find(&images)
	if len(images) != 2 {
		t.Fatalf("expected 2 image rows, got %d", len(images))
	}
	if !images[0].IsPrimary || images[1].IsPrimary {
		t.Fatalf("expected only the first image primary, got %v/%v", images[0].IsPrimary, images[1].IsPrimary)
	}

	// Files actually land on disk
	for _, img := range images {
		if _, err := os.Stat(filepath.Join(os.Getenv("STORAGE_PATH"), img.ImagePath)); err != nil {
			t.Fatalf("expected file at %s: %v", img.ImagePath, err)
		}
	}
}

func TestUploadImagesPrimaryIndex(t *testing.T) {
	t.Setenv("STORAGE_PATH", t.TempDir())
	db := freshDB()
	router := setupProductRouter(db)
	_, token := seedTestUser(db, "admin@test.com")
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/products/"+itoa(product.ID)+"/images",
		map[string]string{"primary_index": "1"}, "images[]", []string{"a.jpg", "b.jpg"}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var primary []models.ProductImage
	db.Where("product_id = ? AND is_primary = ?", product.ID, true).Find(&primary)
	if len(primary) != 1 {
		t.Fatalf("expected exactly one primary image, got %d", len(primary))
	}
	if primary[0].SortOrder != 1 {
		t.Fatalf("expected the second upload to be primary, got sort_order %d", primary[0].SortOrder)
	}
}

func TestUploadImagesRejectsNonImage(t *testing.T) {
	t.Setenv("STORAGE_PATH", t.TempDir())
	db := freshDB()
	router := setupProductRouter(db)
	_, token := seedTestUser(db, "admin@test.com")
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)

	req := multipartRequestWithType("POST", "/api/admin/products/"+itoa(product.ID)+"/images",
		"images[]", "a.pdf", "application/pdf", token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetPrimaryImageClearsOthers(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)
	_, token := seedTestUser(db, "admin@test.com")
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)
	seedProductImage(db, product.ID, "products/1/a.jpg", true, 0)
	second := seedProductImage(db, product.ID, "products/1/b.jpg", false, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT",
		"/api/admin/products/"+itoa(product.ID)+"/images/"+itoa(second.ID)+"/primary", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var primary []models.ProductImage
	db.Where("product_id = ? AND is_primary = ?", product.ID, true).Find(&primary)
	if len(primary) != 1 || primary[0].ID != second.ID {
		t.Fatalf("expected only image %d primary, got %+v", second.ID, primary)
	}
}

func TestDeleteImage(t *testing.T) {
	t.Setenv("STORAGE_PATH", t.TempDir())
	db := freshDB()
	router := setupProductRouter(db)
	_, token := seedTestUser(db, "admin@test.com")
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)
	img := seedProductImage(db, product.ID, "products/1/a.jpg", true, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE",
		"/api/admin/products/"+itoa(product.ID)+"/images/"+itoa(img.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.ProductImage{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected image row deleted, %d remain", count)
	}
}

func TestPrimaryImageResolution(t *testing.T) {
	db := freshDB()
	product := seedProduct(db, "Red Shoe", "red-shoe", 50)

	// No images: no primary
	var loaded models.Product
	db.Preload("Images").First(&loaded, product.ID)
	if loaded.PrimaryImage() != nil {
		t.Fatal("expected nil primary with no images")
	}

	// No explicit flag: first by sort_order wins
	seedProductImage(db, product.ID, "products/1/b.jpg", false, 1)
	first := seedProductImage(db, product.ID, "products/1/a.jpg", false, 0)
	loaded = models.Product{}
	db.Preload("Images").First(&loaded, product.ID)
	if got := loaded.PrimaryImage(); got == nil || got.ID != first.ID {
		t.Fatalf("expected sort_order fallback to image %d, got %+v", first.ID, got)
	}

	// Explicit flag wins over sort_order
	flagged := seedProductImage(db, product.ID, "products/1/c.jpg", true, 2)
	loaded = models.Product{}
	db.Preload("Images").First(&loaded, product.ID)
	if got := loaded.PrimaryImage(); got == nil || got.ID != flagged.ID {
		t.Fatalf("expected flagged image %d, got %+v", flagged.ID, got)
	}
}
