package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

func gcsBucketName() string {
	if b := os.Getenv("GCS_BUCKET"); b != "" {
		return b
	}
	return "sitestock-uploads"
}

// storeImageGCS streams the upload into the configured bucket and returns
// the public object URL. Objects are world-readable; the bucket policy is
// expected to allow that.
func storeImageGCS(ctx context.Context, src io.Reader, objectName, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("storage client: %w", err)
	}
	defer client.Close()

	bucket := gcsBucketName()
	obj := client.Bucket(bucket).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return "", fmt.Errorf("upload object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName), nil
}
