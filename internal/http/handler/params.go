package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var (
	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
)

// listResponse wraps relationship collections, which are not paginated.
type listResponse[T any] struct {
	Items []T `json:"data"`
}

// idParam parses a positive integer path parameter.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
}

func missingField(c *fiber.Ctx, field string) error {
	return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", field+" is required")
}

// pageParams reads limit and offset, defaulting to 10 and 0.
func pageParams(c *fiber.Ctx) (int, int, error) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, errInvalidLimit
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, errInvalidOffset
	}
	return limit, offset, nil
}

func writePageError(c *fiber.Ctx, err error) error {
	code := "INVALID_LIMIT"
	if errors.Is(err, errInvalidOffset) {
		code = "INVALID_OFFSET"
	}
	return writeError(c, fiber.StatusBadRequest, code, err.Error())
}
