// handlers/users.go
package handlers

import (
	"runonstreet-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	api := app.Group("/api/users")

	api.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"userId"`
			Pseudo string `json:"pseudo"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}
		u, err := userService.Upsert(c.UserContext(), req.UserID, req.Pseudo)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"status": "ok", "user": u})
	})

	api.Get("/:userId", func(c *fiber.Ctx) error {
		u, err := userService.Get(c.UserContext(), c.Params("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(u)
	})
}
