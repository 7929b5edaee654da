package storage

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"movie-review/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const posterPrefix = "posters/"

// MinioUploader stores posters in an S3 compatible bucket.
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *zap.Logger
}

// NewMinioUploader connects to MinIO and ensures the bucket exists.
func NewMinioUploader(cfg utils.StorageConfig, log *zap.Logger) (*MinioUploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(client.EndpointURL().String(), "/")
	}

	return &MinioUploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		log:       log.With(zap.String("storage", "minio")),
	}, nil
}

// Upload puts the file under posters/ and returns its public URL.
func (m *MinioUploader) Upload(ctx context.Context, localPath string) (*Asset, error) {
	key := posterPrefix + objectName(localPath)

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	m.log.Debug("Poster uploaded",
		zap.String("key", key),
		zap.Int64("size", info.Size),
	)

	return &Asset{
		URL:    m.publicURL + "/" + m.bucket + "/" + (&url.URL{Path: key}).EscapedPath(),
		Handle: key,
	}, nil
}

// Delete removes the object; removing a missing key is not an error in S3.
func (m *MinioUploader) Delete(ctx context.Context, handle string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, handle, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
