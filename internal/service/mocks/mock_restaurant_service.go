package mocks

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) Create(ctx context.Context, name string, price int) (*model.Restaurant, error) {
	args := m.Called(ctx, name, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Get(ctx context.Context, id int64) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) List(ctx context.Context, limit, offset int) (*service.ListResult[model.Restaurant], error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Restaurant]), args.Error(1)
}

func (m *MockRestaurantService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRestaurantService) Reviews(ctx context.Context, id int64) ([]model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockRestaurantService) Customers(ctx context.Context, id int64) ([]model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}
