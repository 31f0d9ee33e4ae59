package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/config"
)

func TestValidateMinIOConfig(t *testing.T) {
	valid := config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "exports"}

	tests := []struct {
		name    string
		mutate  func(c *config.MinIOConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.MinIOConfig) {}},
		{name: "missing endpoint", mutate: func(c *config.MinIOConfig) { c.Endpoint = "" }, wantErr: "endpoint"},
		{name: "missing secret", mutate: func(c *config.MinIOConfig) { c.SecretKey = "" }, wantErr: "credentials"},
		{name: "missing bucket", mutate: func(c *config.MinIOConfig) { c.Bucket = "" }, wantErr: "bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := ValidateMinIOConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewMinIO_RejectsIncompleteConfig(t *testing.T) {
	s, err := NewMinIO(context.Background(), config.MinIOConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)
	assert.Nil(t, s)
}

// newOfflineStore builds a store whose client never dials; a fixed region
// lets presigning skip the bucket location lookup.
func newOfflineStore(t *testing.T) *minioStore {
	t.Helper()
	cli, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("ak", "sk", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return &minioStore{client: cli, bucket: "exports", now: time.Now}
}

func TestMinIOStore_DownloadURL(t *testing.T) {
	s := newOfflineStore(t)

	raw, err := s.DownloadURL(context.Background(), "exports/restaurants/1/abc.json", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, "/exports/restaurants/1/abc.json"), u.Path)
	assert.Equal(t, `attachment; filename="abc.json"`, u.Query().Get("response-content-disposition"))
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}

func TestMinIOStore_RejectsInvalidKeys(t *testing.T) {
	s := newOfflineStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "/abs.json", "exports/restaurants/1/"} {
		_, err := s.Save(ctx, Upload{Key: key, Body: []byte("{}")})
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		assert.ErrorIs(t, s.Remove(ctx, key), ErrInvalidKey, key)

		_, err = s.DownloadURL(ctx, key, time.Minute)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
