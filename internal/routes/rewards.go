package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/checkindaily/checkin_daily/internal/rewards"
)

// RegisterRewardsRoutes wires rewards endpoints.
func RegisterRewardsRoutes(r fiber.Router, h *rewards.Handler) {
	r.Get("/rewards/:fid", h.Get)
}
