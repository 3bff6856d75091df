package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateImageFilename(t *testing.T) {
	name := GenerateImageFilename("photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"), "got %q", name)
	assert.Contains(t, name, "_")

	other := GenerateImageFilename("photo.JPG")
	assert.NotEqual(t, name, other)
}

func TestStorageURL(t *testing.T) {
	assert.Equal(t,
		"http://localhost:8080/storage/products/1/a.jpg",
		StorageURL("http://localhost:8080", "products/1/a.jpg"))

	assert.Equal(t,
		"https://api.example.com/storage/products/1/a.jpg",
		StorageURL("https://api.example.com/", "/products/1/a.jpg"))

	assert.Equal(t,
		"https://api.example.com/storage/products/1/a.jpg",
		StorageURL("https://api.example.com/storage", "products/1/a.jpg"))
}

func TestStorageRootDefault(t *testing.T) {
	t.Setenv("STORAGE_PATH", "")
	assert.Equal(t, "storage", StorageRoot())

	t.Setenv("STORAGE_PATH", "/var/uploads")
	assert.Equal(t, "/var/uploads", StorageRoot())
}
