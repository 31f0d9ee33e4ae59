package repository

import (
	"context"

	"reviewapi/internal/model"
)

// RestaurantRepository defines data access for restaurants using SQL queries only.
type RestaurantRepository interface {
	// Create inserts a restaurant and returns the stored row with its assigned ID.
	Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)

	// FindByID returns sql.ErrNoRows when the restaurant does not exist.
	FindByID(ctx context.Context, id int64) (*model.Restaurant, error)

	List(ctx context.Context, pq PageQuery) (*PageResult[model.Restaurant], error)

	// ListByCustomer returns the distinct restaurants the customer reviewed.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Restaurant, error)

	// Delete removes a restaurant. It fails with ErrForeignKeyViolation while reviews reference it.
	Delete(ctx context.Context, id int64) error
}
