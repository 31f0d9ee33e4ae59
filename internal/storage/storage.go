// Package storage keeps review export documents in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrInvalidKey is returned for keys that are empty or address a directory.
var ErrInvalidKey = errors.New("storage: invalid object key")

// Upload is one export document to write.
type Upload struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Object describes a stored export document.
type Object struct {
	Key      string
	Size     int64
	ETag     string
	StoredAt time.Time
}

// ExportStore holds export documents and issues time-limited download links for them.
type ExportStore interface {
	Save(ctx context.Context, u Upload) (Object, error)
	Remove(ctx context.Context, key string) error
	// DownloadURL returns a presigned link that serves key as an attachment until ttl elapses.
	DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}
