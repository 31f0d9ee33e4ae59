package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param body body createCustomerRequest true "Customer"
// @Success 201 {object} model.Customer
// @Failure 400 {object} errorPayload
// @Router /customers [post]
func CreateCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCustomerRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		cust, err := svc.Create(c.UserContext(), req.FirstName, req.LastName)
		if err != nil {
			return writeServiceError(c, err, "customer", true)
		}
		return c.Status(fiber.StatusCreated).JSON(cust)
	}
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.ListResult[model.Customer]
// @Failure 400 {object} errorPayload
// @Router /customers [get]
func ListCustomers(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writePageError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, "customer", false)
		}
		return c.JSON(res)
	}
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} model.Customer
// @Failure 404 {object} errorPayload
// @Router /customers/{id} [get]
func GetCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		cust, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "customer", false)
		}
		return c.JSON(cust)
	}
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Rejected with 409 while the customer has reviews.
// @Tags customers
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /customers/{id} [delete]
func DeleteCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, "customer", false)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CustomerReviews godoc
// @Summary Reviews left by a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} listResponse[model.Review]
// @Failure 404 {object} errorPayload
// @Router /customers/{id}/reviews [get]
func CustomerReviews(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		items, err := svc.Reviews(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "customer", false)
		}
		return c.JSON(listResponse[model.Review]{Items: items})
	}
}

// CustomerRestaurants godoc
// @Summary Distinct restaurants a customer has reviewed
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} listResponse[model.Restaurant]
// @Failure 404 {object} errorPayload
// @Router /customers/{id}/restaurants [get]
func CustomerRestaurants(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		items, err := svc.Restaurants(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "customer", false)
		}
		return c.JSON(listResponse[model.Restaurant]{Items: items})
	}
}
