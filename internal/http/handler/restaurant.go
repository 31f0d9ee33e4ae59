package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createRestaurantRequest struct {
	Name  string `json:"name"`
	Price *int   `json:"price"`
}

// CreateRestaurant godoc
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param body body createRestaurantRequest true "Restaurant"
// @Success 201 {object} model.Restaurant
// @Failure 400 {object} errorPayload
// @Router /restaurants [post]
func CreateRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRestaurantRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if req.Price == nil {
			return missingField(c, "price")
		}
		rest, err := svc.Create(c.UserContext(), req.Name, *req.Price)
		if err != nil {
			return writeServiceError(c, err, "restaurant", true)
		}
		return c.Status(fiber.StatusCreated).JSON(rest)
	}
}

// ListRestaurants godoc
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.ListResult[model.Restaurant]
// @Router /restaurants [get]
func ListRestaurants(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writePageError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.JSON(res)
	}
}

// GetRestaurant godoc
// @Summary Get a restaurant
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} model.Restaurant
// @Failure 404 {object} errorPayload
// @Router /restaurants/{id} [get]
func GetRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		rest, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.JSON(rest)
	}
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Rejected with 409 while the restaurant has reviews.
// @Tags restaurants
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /restaurants/{id} [delete]
func DeleteRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestaurantReviews godoc
// @Summary Reviews of a restaurant
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} listResponse[model.Review]
// @Failure 404 {object} errorPayload
// @Router /restaurants/{id}/reviews [get]
func RestaurantReviews(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		items, err := svc.Reviews(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.JSON(listResponse[model.Review]{Items: items})
	}
}

// RestaurantCustomers godoc
// @Summary Distinct customers who reviewed a restaurant
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} listResponse[model.Customer]
// @Failure 404 {object} errorPayload
// @Router /restaurants/{id}/customers [get]
func RestaurantCustomers(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		items, err := svc.Customers(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.JSON(listResponse[model.Customer]{Items: items})
	}
}

// ExportRestaurantReviews godoc
// @Summary Export a restaurant's reviews
// @Description Stores a JSON snapshot in object storage and returns a presigned download URL.
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 201 {object} model.ReviewExport
// @Failure 404 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /restaurants/{id}/exports [post]
func ExportRestaurantReviews(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		exp, err := svc.ExportRestaurantReviews(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "restaurant", false)
		}
		return c.Status(fiber.StatusCreated).JSON(exp)
	}
}
