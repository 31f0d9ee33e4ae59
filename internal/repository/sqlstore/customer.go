package sqlstore

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// CustomerStore is the database/sql implementation of repository.CustomerRepository.
type CustomerStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewCustomerStore creates a new CustomerStore.
func NewCustomerStore(db *sql.DB, dialect Dialect) *CustomerStore {
	return &CustomerStore{db: db, dialect: dialect}
}

var _ repository.CustomerRepository = (*CustomerStore)(nil)

func scanCustomer(s scanner) (model.Customer, error) {
	var c model.Customer
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName)
	return c, err
}

// Create inserts a new customer row and returns it with the store-assigned ID.
func (r *CustomerStore) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const q = `
		INSERT INTO customers (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id, first_name, last_name
	`
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(q), c.FirstName, c.LastName)
	out, err := scanCustomer(row)
	if err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

// FindByID fetches a single customer by its ID.
func (r *CustomerStore) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
		SELECT id, first_name, last_name
		FROM customers
		WHERE id = $1
	`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, r.dialect.rebind(q), id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns customers ordered by ID using LIMIT/OFFSET pagination and a total count.
func (r *CustomerStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Customer], error) {
	const qCount = `SELECT COUNT(*) FROM customers`
	const qList = `
		SELECT id, first_name, last_name
		FROM customers
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return page(ctx, r.db, qCount, r.dialect.rebind(qList), pq, scanCustomer)
}

// ListByRestaurant projects reviews onto their authors.
func (r *CustomerStore) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Customer, error) {
	const q = `
		SELECT DISTINCT c.id, c.first_name, c.last_name
		FROM customers c
		JOIN reviews v ON v.customer_id = c.id
		WHERE v.restaurant_id = $1
		ORDER BY c.id
	`
	return queryAll(ctx, r.db, r.dialect.rebind(q), scanCustomer, restaurantID)
}

// Delete removes a customer by ID.
func (r *CustomerStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM customers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, r.dialect.rebind(q), id); err != nil {
		return translateError(err)
	}
	return nil
}
