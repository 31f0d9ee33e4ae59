package sqlstore

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// RestaurantStore is the database/sql implementation of repository.RestaurantRepository.
type RestaurantStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewRestaurantStore creates a new RestaurantStore.
func NewRestaurantStore(db *sql.DB, dialect Dialect) *RestaurantStore {
	return &RestaurantStore{db: db, dialect: dialect}
}

var _ repository.RestaurantRepository = (*RestaurantStore)(nil)

func scanRestaurant(s scanner) (model.Restaurant, error) {
	var r model.Restaurant
	err := s.Scan(&r.ID, &r.Name, &r.Price)
	return r, err
}

// Create inserts a new restaurant row and returns it with the store-assigned ID.
func (r *RestaurantStore) Create(ctx context.Context, rest *model.Restaurant) (*model.Restaurant, error) {
	const q = `
		INSERT INTO restaurants (name, price)
		VALUES ($1, $2)
		RETURNING id, name, price
	`
	out, err := scanRestaurant(r.db.QueryRowContext(ctx, r.dialect.rebind(q), rest.Name, rest.Price))
	if err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

// FindByID fetches a single restaurant by its ID.
func (r *RestaurantStore) FindByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	const q = `
		SELECT id, name, price
		FROM restaurants
		WHERE id = $1
	`
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, r.dialect.rebind(q), id))
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// List returns restaurants ordered by ID using LIMIT/OFFSET pagination and a total count.
func (r *RestaurantStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Restaurant], error) {
	const qCount = `SELECT COUNT(*) FROM restaurants`
	const qList = `
		SELECT id, name, price
		FROM restaurants
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return page(ctx, r.db, qCount, r.dialect.rebind(qList), pq, scanRestaurant)
}

// ListByCustomer projects a customer's reviews onto the reviewed restaurants.
func (r *RestaurantStore) ListByCustomer(ctx context.Context, customerID int64) ([]model.Restaurant, error) {
	const q = `
		SELECT DISTINCT r.id, r.name, r.price
		FROM restaurants r
		JOIN reviews v ON v.restaurant_id = r.id
		WHERE v.customer_id = $1
		ORDER BY r.id
	`
	return queryAll(ctx, r.db, r.dialect.rebind(q), scanRestaurant, customerID)
}

// Delete removes a restaurant by ID.
func (r *RestaurantStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM restaurants WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, r.dialect.rebind(q), id); err != nil {
		return translateError(err)
	}
	return nil
}
