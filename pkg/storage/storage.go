// Package storage hosts poster images. An Uploader takes a file already on
// local disk and returns where it can be fetched from plus the handle needed
// to delete it later.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Asset is an uploaded file.
type Asset struct {
	URL    string
	Handle string
}

type Uploader interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, handle string) error
}

// New picks the uploader named by cfg.Driver.
func New(cfg utils.StorageConfig, publicBaseURL string, log *zap.Logger) (Uploader, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioUploader(cfg, log)
	case "local", "":
		return NewFileUploader(cfg.UploadDir, strings.TrimRight(publicBaseURL, "/")+"/posters", log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// objectName keeps the extension and makes the name unique.
func objectName(localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return uuid.NewString() + ext
}
