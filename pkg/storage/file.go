package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileUploader copies posters into a directory that the router serves
// under /posters. Used for local development and tests.
type FileUploader struct {
	basePath string
	baseURL  string
	log      *zap.Logger
}

// NewFileUploader creates the base directory if missing.
func NewFileUploader(basePath, baseURL string, log *zap.Logger) (*FileUploader, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileUploader{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log.With(zap.String("storage", "file")),
	}, nil
}

// Dir is the directory holding the uploaded files.
func (f *FileUploader) Dir() string {
	return f.basePath
}

func (f *FileUploader) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := objectName(localPath)
	out, err := os.Create(filepath.Join(f.basePath, name))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &Asset{URL: f.baseURL + "/" + name, Handle: name}, nil
}

func (f *FileUploader) Delete(ctx context.Context, handle string) error {
	name := filepath.Base(handle)
	if name == "." || name == string(os.PathSeparator) {
		return fmt.Errorf("invalid asset handle %q", handle)
	}
	err := os.Remove(filepath.Join(f.basePath, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
