package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/service"
)

// Services bundles the use cases the routes dispatch to.
type Services struct {
	Customers   service.CustomerService
	Restaurants service.RestaurantService
	Reviews     service.ReviewService
	Exports     service.ExportService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	customers := app.Group("/customers")
	customers.Post("", CreateCustomer(svc.Customers))
	customers.Get("", ListCustomers(svc.Customers))
	customers.Get("/:id", GetCustomer(svc.Customers))
	customers.Delete("/:id", DeleteCustomer(svc.Customers))
	customers.Get("/:id/reviews", CustomerReviews(svc.Customers))
	customers.Get("/:id/restaurants", CustomerRestaurants(svc.Customers))

	restaurants := app.Group("/restaurants")
	restaurants.Post("", CreateRestaurant(svc.Restaurants))
	restaurants.Get("", ListRestaurants(svc.Restaurants))
	restaurants.Get("/:id", GetRestaurant(svc.Restaurants))
	restaurants.Delete("/:id", DeleteRestaurant(svc.Restaurants))
	restaurants.Get("/:id/reviews", RestaurantReviews(svc.Restaurants))
	restaurants.Get("/:id/customers", RestaurantCustomers(svc.Restaurants))
	restaurants.Post("/:id/exports", ExportRestaurantReviews(svc.Exports))

	reviews := app.Group("/reviews")
	reviews.Post("", CreateReview(svc.Reviews))
	reviews.Get("", ListReviews(svc.Reviews))
	reviews.Get("/:id", GetReview(svc.Reviews))
	reviews.Delete("/:id", DeleteReview(svc.Reviews))
	reviews.Get("/:id/customer", ReviewCustomer(svc.Reviews))
	reviews.Get("/:id/restaurant", ReviewRestaurant(svc.Reviews))
}
