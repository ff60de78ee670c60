package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const uploadDir = "./uploads"

// storeImageLocal writes the upload under the local uploads directory and
// returns the relative URL the static file route serves it from.
func storeImageLocal(src io.Reader, objectName string) (string, error) {
	target := filepath.Join(uploadDir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return fmt.Sprintf("/uploads/%s", objectName), nil
}
