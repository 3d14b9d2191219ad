// handlers/offers.go
package handlers

import (
	"strconv"
	"strings"

	"runonstreet-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupOfferRoutes(app *fiber.App, offerService *services.OfferService) {
	app.Get("/api/offers/nearby", nearbyOffers(offerService))

	// Map pins. Always answers with an array, empty when the store is down.
	app.Get("/establishments", func(c *fiber.Ctx) error {
		return c.JSON(offerService.Establishments(c.UserContext()))
	})
}

func nearbyOffers(offerService *services.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		latStr := strings.TrimSpace(c.Query("lat"))
		lngStr := strings.TrimSpace(c.Query("lng"))
		if latStr == "" || lngStr == "" {
			return badRequest(c, "lat and lng query parameters are required")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return badRequest(c, "lat must be a number")
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return badRequest(c, "lng must be a number")
		}

		// Unparseable or missing radius falls back to the configured default.
		radius, err := strconv.Atoi(c.Query("radius"))
		if err != nil || radius <= 0 {
			radius = offerService.DefaultRadius
		}

		res, err := offerService.Nearby(c.UserContext(), services.NearbyQuery{
			Lat:          lat,
			Lng:          lng,
			RadiusMeters: radius,
			City:         strings.TrimSpace(c.Query("city")),
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(res)
	}
}
