package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/service"
)

type createReviewRequest struct {
	StarRating   *int  `json:"star_rating"`
	CustomerID   int64 `json:"customer_id"`
	RestaurantID int64 `json:"restaurant_id"`
}

// CreateReview godoc
// @Summary Create a review
// @Description customer_id and restaurant_id must reference existing rows.
// @Tags reviews
// @Accept json
// @Produce json
// @Param body body createReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /reviews [post]
func CreateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if req.StarRating == nil {
			return missingField(c, "star_rating")
		}
		rev, err := svc.Create(c.UserContext(), *req.StarRating, req.CustomerID, req.RestaurantID)
		if err != nil {
			return writeServiceError(c, err, "review", true)
		}
		return c.Status(fiber.StatusCreated).JSON(rev)
	}
}

// ListReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.ListResult[model.Review]
// @Router /reviews [get]
func ListReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writePageError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, "review", false)
		}
		return c.JSON(res)
	}
}

// GetReview godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errorPayload
// @Router /reviews/{id} [get]
func GetReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		rev, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "review", false)
		}
		return c.JSON(rev)
	}
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Param id path int true "Review ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /reviews/{id} [delete]
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, "review", false)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReviewCustomer godoc
// @Summary Author of a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Customer
// @Failure 404 {object} errorPayload
// @Router /reviews/{id}/customer [get]
func ReviewCustomer(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		cust, err := svc.Customer(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "review", false)
		}
		return c.JSON(cust)
	}
}

// ReviewRestaurant godoc
// @Summary Restaurant a review is about
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Restaurant
// @Failure 404 {object} errorPayload
// @Router /reviews/{id}/restaurant [get]
func ReviewRestaurant(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return invalidID(c)
		}
		rest, err := svc.Restaurant(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "review", false)
		}
		return c.JSON(rest)
	}
}
