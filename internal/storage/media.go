package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mangaist/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// MediaStore wraps the S3-compatible object store that holds every uploaded
// image (covers, character art, profile images, panels). Records only ever
// persist the public URL returned from Upload.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMediaStore connects to the object store and creates the bucket with a
// public read policy if it does not exist yet.
func NewMediaStore(cfg *config.Config, logger *slog.Logger) (*MediaStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio init: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}

		policy := `{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::` + cfg.MinioBucket + `/*"
				}
			]
		}`
		if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, policy); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
		logger.Info("created media bucket", "bucket", cfg.MinioBucket)
	}

	return &MediaStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *MediaStore) Upload(ctx context.Context, key string, src io.Reader, size int64, mimeType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, src, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.URL(key), nil
}

// Delete removes an object by key.
func (s *MediaStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return ErrObjectNotFound
		}
		return fmt.Errorf("stat %s: %w", key, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// URL builds the public URL for a stored object key.
func (s *MediaStore) URL(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}

// KeyFromURL recovers the object key from a URL previously returned by
// Upload. Returns false for URLs that do not belong to this store.
func (s *MediaStore) KeyFromURL(url string) (string, bool) {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
