package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/storage"
)

// MockExportStore is a testify double for storage.ExportStore.
type MockExportStore struct {
	mock.Mock
}

var _ storage.ExportStore = (*MockExportStore)(nil)

// Save records the upload. The first return value may be a
// func(storage.Upload) storage.Object to inspect the body.
func (m *MockExportStore) Save(ctx context.Context, u storage.Upload) (storage.Object, error) {
	args := m.Called(ctx, u)
	if f, ok := args.Get(0).(func(storage.Upload) storage.Object); ok {
		return f(u), args.Error(1)
	}
	return args.Get(0).(storage.Object), args.Error(1)
}

func (m *MockExportStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockExportStore) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
