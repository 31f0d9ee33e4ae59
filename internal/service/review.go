package service

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// ReviewService defines the use cases for reviews.
type ReviewService interface {
	// Create persists a review. Unresolved customer or restaurant IDs surface as
	// repository.ErrForeignKeyViolation from the store.
	Create(ctx context.Context, starRating int, customerID, restaurantID int64) (*model.Review, error)
	Get(ctx context.Context, id int64) (*model.Review, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Review], error)
	Delete(ctx context.Context, id int64) error

	// Customer returns the author of the review.
	Customer(ctx context.Context, id int64) (*model.Customer, error)

	// Restaurant returns the reviewed restaurant.
	Restaurant(ctx context.Context, id int64) (*model.Restaurant, error)
}

type reviewService struct {
	reviews     repository.ReviewRepository
	customers   repository.CustomerRepository
	restaurants repository.RestaurantRepository
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(reviews repository.ReviewRepository, customers repository.CustomerRepository, restaurants repository.RestaurantRepository) ReviewService {
	return &reviewService{reviews: reviews, customers: customers, restaurants: restaurants}
}

func (s *reviewService) Create(ctx context.Context, starRating int, customerID, restaurantID int64) (*model.Review, error) {
	if customerID <= 0 || restaurantID <= 0 {
		return nil, ErrInvalidID
	}
	return s.reviews.Create(ctx, &model.Review{
		StarRating:   starRating,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
	})
}

func (s *reviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	v, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (s *reviewService) List(ctx context.Context, limit, offset int) (*ListResult[model.Review], error) {
	res, err := s.reviews.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Review]{Items: res.Items, Total: res.Total}, nil
}

// Delete removes a review after confirming it exists.
func (s *reviewService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.customers.FindByID(ctx, v.CustomerID)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *reviewService) Restaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.restaurants.FindByID(ctx, v.RestaurantID)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}
