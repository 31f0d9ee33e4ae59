package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"reviewapi/internal/config"
)

// minioStore implements ExportStore on MinIO or any S3-compatible backend.
type minioStore struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// ValidateMinIOConfig reports the first missing MinIO setting.
func ValidateMinIOConfig(cfg config.MinIOConfig) error {
	switch {
	case cfg.Endpoint == "":
		return fmt.Errorf("minio endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return fmt.Errorf("minio credentials are required")
	case cfg.Bucket == "":
		return fmt.Errorf("minio bucket is required")
	}
	return nil
}

// NewMinIO creates the export store and makes sure its bucket exists.
// Outgoing S3 calls are traced through otelhttp.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (ExportStore, error) {
	if err := ValidateMinIOConfig(cfg); err != nil {
		return nil, err
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStore{client: cli, bucket: cfg.Bucket, now: time.Now}, nil
}

func (m *minioStore) Save(ctx context.Context, u Upload) (Object, error) {
	if err := checkKey(u.Key); err != nil {
		return Object{}, err
	}
	info, err := m.client.PutObject(ctx, m.bucket, u.Key, bytes.NewReader(u.Body), int64(len(u.Body)), minio.PutObjectOptions{
		ContentType:  u.ContentType,
		UserMetadata: u.Metadata,
	})
	if err != nil {
		return Object{}, err
	}
	// PutObject does not report LastModified.
	return Object{Key: u.Key, Size: info.Size, ETag: info.ETag, StoredAt: m.now()}, nil
}

func (m *minioStore) Remove(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *minioStore) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, ttl, downloadParams(key))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// downloadParams makes the presigned response save as the object's base name.
func downloadParams(key string) url.Values {
	return url.Values{
		"response-content-disposition": {fmt.Sprintf("attachment; filename=%q", path.Base(key))},
	}
}
