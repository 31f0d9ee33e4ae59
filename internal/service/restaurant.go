package service

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// RestaurantService defines the use cases for restaurants and their related rows.
type RestaurantService interface {
	Create(ctx context.Context, name string, price int) (*model.Restaurant, error)
	Get(ctx context.Context, id int64) (*model.Restaurant, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Restaurant], error)

	// Delete fails with repository.ErrForeignKeyViolation while the restaurant has reviews.
	Delete(ctx context.Context, id int64) error

	// Reviews returns every review of the restaurant.
	Reviews(ctx context.Context, id int64) ([]model.Review, error)

	// Customers returns the distinct customers who reviewed the restaurant.
	Customers(ctx context.Context, id int64) ([]model.Customer, error)
}

type restaurantService struct {
	restaurants repository.RestaurantRepository
	customers   repository.CustomerRepository
	reviews     repository.ReviewRepository
}

// NewRestaurantService constructs a new RestaurantService.
func NewRestaurantService(restaurants repository.RestaurantRepository, customers repository.CustomerRepository, reviews repository.ReviewRepository) RestaurantService {
	return &restaurantService{restaurants: restaurants, customers: customers, reviews: reviews}
}

func (s *restaurantService) Create(ctx context.Context, name string, price int) (*model.Restaurant, error) {
	if blank(name) {
		return nil, ErrNameRequired
	}
	return s.restaurants.Create(ctx, &model.Restaurant{Name: name, Price: price})
}

func (s *restaurantService) Get(ctx context.Context, id int64) (*model.Restaurant, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	r, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *restaurantService) List(ctx context.Context, limit, offset int) (*ListResult[model.Restaurant], error) {
	res, err := s.restaurants.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Restaurant]{Items: res.Items, Total: res.Total}, nil
}

func (s *restaurantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.restaurants.Delete(ctx, id)
}

func (s *restaurantService) Reviews(ctx context.Context, id int64) ([]model.Review, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.reviews.ListByRestaurant(ctx, id)
}

func (s *restaurantService) Customers(ctx context.Context, id int64) ([]model.Customer, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.customers.ListByRestaurant(ctx, id)
}
