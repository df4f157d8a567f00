package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// SwaggerUI serves the API docs with the host and scheme the client used.
// info is shared by every request, so it is only touched under mu.
func SwaggerUI(info *swag.Spec) fiber.Handler {
	var mu sync.Mutex
	ui := swagger.HandlerDefault

	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		mu.Lock()
		defer mu.Unlock()
		info.Host = c.Get("Host")
		info.Schemes = []string{scheme}
		return ui(c)
	}
}
