package sqlstore

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// ReviewStore is the database/sql implementation of repository.ReviewRepository.
type ReviewStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db *sql.DB, dialect Dialect) *ReviewStore {
	return &ReviewStore{db: db, dialect: dialect}
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)

const reviewColumns = `id, star_rating, customer_id, restaurant_id`

func scanReview(s scanner) (model.Review, error) {
	var v model.Review
	err := s.Scan(&v.ID, &v.StarRating, &v.CustomerID, &v.RestaurantID)
	return v, err
}

// Create inserts a new review row. Foreign keys are checked by the store at insert time.
func (r *ReviewStore) Create(ctx context.Context, v *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (star_rating, customer_id, restaurant_id)
		VALUES ($1, $2, $3)
		RETURNING ` + reviewColumns
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(q), v.StarRating, v.CustomerID, v.RestaurantID)
	out, err := scanReview(row)
	if err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

// FindByID fetches a single review by its ID.
func (r *ReviewStore) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	v, err := scanReview(r.db.QueryRowContext(ctx, r.dialect.rebind(q), id))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns reviews ordered by ID using LIMIT/OFFSET pagination and a total count.
func (r *ReviewStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Review], error) {
	const qCount = `SELECT COUNT(*) FROM reviews`
	const qList = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY id LIMIT $1 OFFSET $2`
	return page(ctx, r.db, qCount, r.dialect.rebind(qList), pq, scanReview)
}

// ListByCustomer returns every review left by the customer.
func (r *ReviewStore) ListByCustomer(ctx context.Context, customerID int64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE customer_id = $1 ORDER BY id`
	return queryAll(ctx, r.db, r.dialect.rebind(q), scanReview, customerID)
}

// ListByRestaurant returns every review of the restaurant.
func (r *ReviewStore) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE restaurant_id = $1 ORDER BY id`
	return queryAll(ctx, r.db, r.dialect.rebind(q), scanReview, restaurantID)
}

// Delete removes a review by ID. It does not return an error if the row does not exist.
func (r *ReviewStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(q), id)
	return err
}
