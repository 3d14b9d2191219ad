// handlers/stats.go
package handlers

import (
	"strconv"

	"runonstreet-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService) {
	app.Get("/api/stats/offers/:offerId", func(c *fiber.Ctx) error {
		offerID, err := strconv.ParseUint(c.Params("offerId"), 10, 32)
		if err != nil {
			return badRequest(c, "offerId must be numeric")
		}
		stats, err := statsService.OfferStats(c.UserContext(), uint(offerID))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(stats)
	})
}
