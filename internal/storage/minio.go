package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/nurpe/moto-rental/internal/config"
)

// ImageStorage keeps CNH images in a MinIO bucket.
type ImageStorage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewImageStorage connects to MinIO and creates the bucket when missing.
func NewImageStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ImageStorage, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Storage.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Storage.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("bucket created")
	}

	log.Info().
		Str("endpoint", cfg.Storage.Endpoint).
		Str("bucket", cfg.Storage.Bucket).
		Msg("minio client initialized")

	return &ImageStorage{
		client:   client,
		bucket:   cfg.Storage.Bucket,
		endpoint: cfg.Storage.Endpoint,
		useSSL:   cfg.Storage.UseSSL,
	}, nil
}

// Upload stores data under key and returns the object URL.
func (s *ImageStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return objectURL(s.endpoint, s.bucket, key, s.useSSL), nil
}

func (s *ImageStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func objectURL(endpoint, bucket, key string, useSSL bool) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   endpoint,
		Path:   "/" + bucket + "/" + key,
	}
	return u.String()
}
