// handlers/challenges.go
package handlers

import (
	"time"

	"runonstreet-backend/services"

	"github.com/gofiber/fiber/v2"
)

type completeChallengeRequest struct {
	OfferID        *uint      `json:"offerId"`
	UserID         *string    `json:"userId"`
	StartedAt      *time.Time `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	Success        *bool      `json:"success"`
	DistanceMeters *float64   `json:"distanceMeters"`
	QRCode         *string    `json:"qrCode"`
}

type validateChallengeRequest struct {
	QRCode string `json:"qrCode"`
}

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	api := app.Group("/api/challenges")

	api.Post("/complete", func(c *fiber.Ctx) error {
		var req completeChallengeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}
		if req.OfferID == nil || req.StartedAt == nil {
			return badRequest(c, "offerId and startedAt are required")
		}

		// A completion report without an explicit outcome counts as a success.
		success := true
		if req.Success != nil {
			success = *req.Success
		}

		run, err := challengeService.Report(c.UserContext(), services.CompletionReport{
			OfferID:        *req.OfferID,
			UserID:         req.UserID,
			StartedAt:      req.StartedAt,
			CompletedAt:    req.CompletedAt,
			Success:        success,
			DistanceMeters: req.DistanceMeters,
			QRCode:         req.QRCode,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "run": run})
	})

	// Merchant scan. 404 covers unknown, already-validated and failed-run codes
	// alike; a client retry after a success must read it as "already validated".
	api.Post("/validate", func(c *fiber.Ctx) error {
		var req validateChallengeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}
		if req.QRCode == "" {
			return badRequest(c, "qrCode is required")
		}

		run, err := challengeService.Validate(c.UserContext(), req.QRCode)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"status": "ok", "run": run})
	})
}
