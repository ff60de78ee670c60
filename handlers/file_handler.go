package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadProductImage stores an image and appends its URL to the product's
// image list. Storage backend is picked per environment: GCS on Cloud Run
// or when USE_GCS is set, the local uploads directory otherwise.
func UploadProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		writeError(w, apperr.Validation(map[string]string{
			"file": fmt.Sprintf("Unsupported image type %q", contentType),
		}))
		return
	}

	objectName := uniqueObjectName(header.Filename)

	var url string
	if useGCS() {
		url, err = storeImageGCS(r.Context(), file, objectName, contentType)
	} else {
		url, err = storeImageLocal(file, objectName)
	}
	if err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Optional association: when product_id rides along, the URL is
	// appended to that product's images in the same request.
	if productID := r.FormValue("product_id"); productID != "" {
		id, parseErr := uuid.Parse(productID)
		if parseErr != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}
		db, ok := database(w)
		if !ok {
			return
		}
		var product models.Product
		if err := db.First(&product, "id = ? AND is_active = ?", id, true).Error; err != nil {
			writeError(w, apperr.FromDB(err))
			return
		}
		product.ImageURLs = append(product.ImageURLs, url)
		if err := db.Model(&product).Update("image_urls", pq.StringArray(product.ImageURLs)).Error; err != nil {
			writeError(w, apperr.FromDB(err))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":      url,
		"filename": objectName,
	})
}

func useGCS() bool {
	return os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

func uniqueObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("products/%s%s", uuid.New().String(), ext)
}
