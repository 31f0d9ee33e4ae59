package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"reviewapi/docs"
)

// swaggerMu guards docs.SwaggerInfo, which the UI reads while rendering doc.json.
var swaggerMu sync.Mutex

// SwaggerDocs serves the Swagger UI with host and scheme taken from the request.
func SwaggerDocs() fiber.Handler {
	ui := swagger.HandlerDefault
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		swaggerMu.Lock()
		defer swaggerMu.Unlock()

		docs.SwaggerInfo.Host = strings.Clone(c.Get("Host"))
		docs.SwaggerInfo.Schemes = []string{strings.Clone(scheme)}

		return ui(c)
	}
}
