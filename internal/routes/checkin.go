package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/checkindaily/checkin_daily/internal/checkin"
)

// RegisterCheckinRoutes wires check-in endpoints.
func RegisterCheckinRoutes(r fiber.Router, h *checkin.Handler, rateLimiter fiber.Handler) {
	r.Post("/checkin", rateLimiter, h.Checkin)
	r.Get("/checkin/:fid", h.State)
}
