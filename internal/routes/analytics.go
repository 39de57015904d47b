package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/checkindaily/checkin_daily/internal/analytics"
)

// RegisterAnalyticsRoutes wires analytics endpoints.
func RegisterAnalyticsRoutes(r fiber.Router, h *analytics.Handler) {
	r.Get("/analytics/:fid", h.UserStats)
	r.Get("/analytics/:fid/history", h.History)
	r.Get("/stats", h.Global)
}
