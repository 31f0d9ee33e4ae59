package repository

import (
	"context"

	"reviewapi/internal/model"
)

// ReviewRepository defines data access for reviews using SQL queries only.
type ReviewRepository interface {
	// Create inserts a review. Unknown customer or restaurant IDs fail with ErrForeignKeyViolation.
	Create(ctx context.Context, r *model.Review) (*model.Review, error)

	// FindByID returns sql.ErrNoRows when the review does not exist.
	FindByID(ctx context.Context, id int64) (*model.Review, error)

	List(ctx context.Context, pq PageQuery) (*PageResult[model.Review], error)

	ListByCustomer(ctx context.Context, customerID int64) ([]model.Review, error)

	ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Review, error)

	// Delete removes a review by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int64) error
}
