package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/repository"
	"reviewapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps service and repository errors to HTTP responses.
// entity names the resource in not-found messages. A foreign-key violation is
// 422 on create and 409 otherwise; onCreate selects which.
func writeServiceError(c *fiber.Ctx, err error, entity string, onCreate bool) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.Is(err, service.ErrFirstNameRequired),
		errors.Is(err, service.ErrLastNameRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, repository.ErrNotNullViolation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", entity+" not found")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		if onCreate {
			return writeError(c, fiber.StatusUnprocessableEntity, "UNRESOLVED_REFERENCE", "customer_id or restaurant_id does not exist")
		}
		return writeError(c, fiber.StatusConflict, "HAS_REVIEWS", entity+" still has reviews")
	case errors.Is(err, service.ErrExportsUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "EXPORTS_UNAVAILABLE", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func validationMessage(err error) string {
	if errors.Is(err, repository.ErrNotNullViolation) {
		return "required field is missing"
	}
	return err.Error()
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusUnprocessableEntity:
			return writeError(c, status, "UNPROCESSABLE_ENTITY", "unprocessable entity")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
