package service

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// CustomerService defines the use cases for customers and their related rows.
type CustomerService interface {
	Create(ctx context.Context, firstName, lastName string) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Customer], error)

	// Delete fails with repository.ErrForeignKeyViolation while the customer has reviews.
	Delete(ctx context.Context, id int64) error

	// Reviews returns every review the customer has left.
	Reviews(ctx context.Context, id int64) ([]model.Review, error)

	// Restaurants returns the distinct restaurants the customer has reviewed.
	Restaurants(ctx context.Context, id int64) ([]model.Restaurant, error)
}

type customerService struct {
	customers   repository.CustomerRepository
	restaurants repository.RestaurantRepository
	reviews     repository.ReviewRepository
}

// NewCustomerService constructs a new CustomerService.
func NewCustomerService(customers repository.CustomerRepository, restaurants repository.RestaurantRepository, reviews repository.ReviewRepository) CustomerService {
	return &customerService{customers: customers, restaurants: restaurants, reviews: reviews}
}

func (s *customerService) Create(ctx context.Context, firstName, lastName string) (*model.Customer, error) {
	if blank(firstName) {
		return nil, ErrFirstNameRequired
	}
	if blank(lastName) {
		return nil, ErrLastNameRequired
	}
	return s.customers.Create(ctx, &model.Customer{FirstName: firstName, LastName: lastName})
}

func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context, limit, offset int) (*ListResult[model.Customer], error) {
	res, err := s.customers.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Customer]{Items: res.Items, Total: res.Total}, nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.customers.Delete(ctx, id)
}

func (s *customerService) Reviews(ctx context.Context, id int64) ([]model.Review, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.reviews.ListByCustomer(ctx, id)
}

func (s *customerService) Restaurants(ctx context.Context, id int64) ([]model.Restaurant, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.restaurants.ListByCustomer(ctx, id)
}
