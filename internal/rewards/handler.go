package rewards

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes rewards HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a rewards HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the user's points and tier; unknown users default to bronze.
func (h *Handler) Get(c *fiber.Ctx) error {
	fid, err := strconv.ParseInt(c.Params("fid"), 10, 64)
	if err != nil || fid <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid fid")
	}

	state, err := h.service.Get(c.UserContext(), fid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to load rewards")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"fid":            state.FID,
		"total_points":   state.TotalPoints,
		"tier":           state.Tier,
		"last_reward_at": state.LastRewardAt,
	})
}
