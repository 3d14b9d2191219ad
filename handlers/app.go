// handlers/app.go
package handlers

import (
	"runonstreet-backend/middleware"
	"runonstreet-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AppDeps is everything the HTTP surface is built from.
type AppDeps struct {
	AllowedOrigins string
	Pinger         Pinger
	Offers         *services.OfferService
	Challenges     *services.ChallengeService
	Users          *services.UserService
	Stats          *services.StatsService
}

// NewApp builds the Fiber app with middleware and every route mounted.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "runonstreet-backend",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	origins := deps.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		MaxAge:       86400,
	}))

	SetupSystemRoutes(app, deps.Pinger)
	SetupOfferRoutes(app, deps.Offers)
	SetupChallengeRoutes(app, deps.Challenges)
	SetupUserRoutes(app, deps.Users)
	SetupStatsRoutes(app, deps.Stats)

	return app
}
