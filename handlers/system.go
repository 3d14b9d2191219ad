// handlers/system.go
package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Pinger is anything that can probe store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 3 * time.Second

func SetupSystemRoutes(app *fiber.App, pinger Pinger) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API Run On Street OK")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("[HEALTH] store unreachable")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "error",
				"database": "down",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "up"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
