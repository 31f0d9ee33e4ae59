package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/config"
	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
	"reviewapi/internal/model"
	"reviewapi/internal/repository/sqlstore"
	"reviewapi/internal/service"
)

// newSQLiteApp wires the routes to services backed by a migrated SQLite file.
func newSQLiteApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(config.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "reviews.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mg, err := migration.New(ctx, db, config.DriverSQLite, "", nil)
	require.NoError(t, err)
	require.NoError(t, mg.Up(ctx))

	customers := sqlstore.NewCustomerStore(db, sqlstore.SQLite)
	restaurants := sqlstore.NewRestaurantStore(db, sqlstore.SQLite)
	reviews := sqlstore.NewReviewStore(db, sqlstore.SQLite)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, db, Services{
		Customers:   service.NewCustomerService(customers, restaurants, reviews),
		Restaurants: service.NewRestaurantService(restaurants, customers, reviews),
		Reviews:     service.NewReviewService(reviews, customers, restaurants),
		Exports:     service.NewExportService(nil, restaurants, customers, reviews, 0),
	})
	return app
}

func createJSON[T any](t *testing.T, app *fiber.App, target, body string) T {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, target, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestDeleteParents_SQLite(t *testing.T) {
	app := newSQLiteApp(t)

	c := createJSON[model.Customer](t, app, "/customers", `{"first_name":"John","last_name":"Doe"}`)
	r := createJSON[model.Restaurant](t, app, "/restaurants", `{"name":"R1","price":1000}`)
	v := createJSON[model.Review](t, app, "/reviews",
		fmt.Sprintf(`{"star_rating":7,"customer_id":%d,"restaurant_id":%d}`, c.ID, r.ID))

	for _, target := range []string{
		fmt.Sprintf("/customers/%d", c.ID),
		fmt.Sprintf("/restaurants/%d", r.ID),
	} {
		resp := doJSON(t, app, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode, target)
		assert.Equal(t, "HAS_REVIEWS", decodeError(t, resp).Error.Code, target)
	}

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/reviews/%d", v.ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/customers/%d", c.ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/restaurants/%d", r.ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateReview_UnknownParent_SQLite(t *testing.T) {
	app := newSQLiteApp(t)

	c := createJSON[model.Customer](t, app, "/customers", `{"first_name":"Jane","last_name":"Doe"}`)

	resp := doJSON(t, app, http.MethodPost, "/reviews",
		fmt.Sprintf(`{"star_rating":5,"customer_id":%d,"restaurant_id":999}`, c.ID))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "UNRESOLVED_REFERENCE", decodeError(t, resp).Error.Code)
}
