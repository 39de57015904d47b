package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/checkindaily/checkin_daily/internal/checkin"
)

// Handler exposes analytics HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an analytics HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UserStats returns per-user statistics.
func (h *Handler) UserStats(c *fiber.Ctx) error {
	fid, err := checkin.ParseFID(c.Params("fid"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid fid")
	}
	return c.Status(http.StatusOK).JSON(h.service.UserStats(c.UserContext(), fid, time.Now()))
}

// History returns the user's recent check-ins.
func (h *Handler) History(c *fiber.Ctx) error {
	fid, err := checkin.ParseFID(c.Params("fid"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid fid")
	}
	days, _ := strconv.Atoi(c.Query("days", "30"))

	entries := h.service.History(c.UserContext(), fid, days, time.Now())
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"fid": fid, "history": entries})
}

// Global returns platform-wide totals.
func (h *Handler) Global(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.service.Global(c.UserContext()))
}
