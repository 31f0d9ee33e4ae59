package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/logging"
)

// Logger logs each HTTP request as one JSON line on stdout.
// Fields: request_id, method, path, route, status, latency (ms), ts.
func Logger(log *logging.Logger) fiber.Handler {
	return requestLogger(log)
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return requestLogger(logging.New(w, loc))
}

func requestLogger(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		f := logging.Fields{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"route":      c.Route().Path,
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if status >= fiber.StatusInternalServerError {
			f["level"] = "error"
		}
		log.Log(f)

		return err
	}
}

// statusOf is the status the error handler will write for err.
func statusOf(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
