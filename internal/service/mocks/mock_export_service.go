package mocks

import (
	"context"

	"reviewapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportRestaurantReviews(ctx context.Context, restaurantID int64) (*model.ReviewExport, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewExport), args.Error(1)
}
