package repository

import (
	"context"

	"reviewapi/internal/model"
)

// CustomerRepository defines data access for customers using SQL queries only.
type CustomerRepository interface {
	// Create inserts a customer and returns the stored row with its assigned ID.
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// FindByID returns sql.ErrNoRows when the customer does not exist.
	FindByID(ctx context.Context, id int64) (*model.Customer, error)

	List(ctx context.Context, pq PageQuery) (*PageResult[model.Customer], error)

	// ListByRestaurant returns the distinct customers who reviewed the restaurant.
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Customer, error)

	// Delete removes a customer. It fails with ErrForeignKeyViolation while reviews reference it.
	Delete(ctx context.Context, id int64) error
}
