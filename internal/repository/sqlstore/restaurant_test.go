package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

func TestRestaurantStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRestaurantStore(db, Postgres)

	mock.ExpectQuery(`INSERT INTO restaurants \(name, price\)`).
		WithArgs("R1", 1000).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(1, "R1", 1000))

	result, err := repo.Create(context.Background(), &model.Restaurant{Name: "R1", Price: 1000})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 1000, result.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantStore_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRestaurantStore(db, Postgres)

	mock.ExpectQuery("SELECT (.+) FROM restaurants WHERE id = ?").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	rest, err := repo.FindByID(context.Background(), 5)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, rest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRestaurantStore(db, Postgres)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM restaurants ORDER BY id").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(3, "R3", 3000))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 1, Offset: 2})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "R3", res.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantStore_ListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRestaurantStore(db, Postgres)

	mock.ExpectQuery(`SELECT DISTINCT r.id, r.name, r.price\s+FROM restaurants r\s+JOIN reviews v ON v.restaurant_id = r.id\s+WHERE v.customer_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow(1, "R1", 1000).
			AddRow(2, "R2", 2000))

	items, err := repo.ListByCustomer(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantStore_SQLiteRebind(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRestaurantStore(db, SQLite)

	mock.ExpectExec(`DELETE FROM restaurants WHERE id = ?`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
