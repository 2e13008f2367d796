// Package storage implements the upload-credential port on a MinIO (or any
// S3-compatible) object store. Lecture documents are uploaded directly by the
// browser with a presigned URL; the service never proxies file bytes.
package storage

import (
	"context"
	"fmt"
	"time"

	"lectoquiz/internal/config"
	"lectoquiz/internal/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage issues presigned upload URLs for lecture documents.
type MinioStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioStorage creates a MinioStorage from configuration.
func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint cannot be empty")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket cannot be empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		expiry: cfg.UploadExpiry,
	}, nil
}

// IssueUploadURL returns a presigned PUT URL scoped to the given object key.
func (s *MinioStorage) IssueUploadURL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", objectKey, err)
	}
	return u.String(), nil
}

var _ domain.UploadURLIssuer = (*MinioStorage)(nil)
