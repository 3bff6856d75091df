package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageRoot is the directory uploaded files live in; it is also mounted as
// the static /storage route.
func StorageRoot() string {
	if root := os.Getenv("STORAGE_PATH"); root != "" {
		return root
	}
	return "storage"
}

// GenerateImageFilename produces "<unix>_<random>.<ext>" like the upload
// paths the storefront already expects.
func GenerateImageFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:13]
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), random, ext)
}

// StorageURL turns a stored relative image path into an absolute URL under
// the caller's own scheme and host. The base URL is threaded in explicitly
// so formatting stays independent of any ambient request state.
func StorageURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/storage") {
		baseURL += "/storage"
	}
	return baseURL + "/" + strings.TrimLeft(path, "/")
}
