package checkin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes check-in HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a check-in HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type checkinRequest struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"pfp_url"`
}

type checkinResponse struct {
	Streak           int    `json:"streak"`
	AlreadyCheckedIn bool   `json:"already_checked_in"`
	PointsEarned     int    `json:"points_earned,omitempty"`
	Tier             string `json:"tier,omitempty"`
}

// Checkin credits today's check-in for the given user.
func (h *Handler) Checkin(c *fiber.Ctx) error {
	var req checkinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.ProcessCheckin(c.UserContext(), Input{
		FID: req.FID,
		Now: time.Now(),
		Profile: Profile{
			Username:    req.Username,
			DisplayName: req.DisplayName,
			AvatarURL:   req.AvatarURL,
		},
	})
	if err != nil {
		if errors.Is(err, ErrInvalidFID) {
			return fiber.NewError(http.StatusBadRequest, "invalid fid")
		}
		return fiber.NewError(http.StatusInternalServerError, "check-in failed")
	}

	return c.Status(http.StatusOK).JSON(checkinResponse{
		Streak:           outcome.Streak,
		AlreadyCheckedIn: outcome.AlreadyCheckedIn,
		PointsEarned:     outcome.PointsEarned,
		Tier:             outcome.Tier,
	})
}

// State returns the user's streak state; unknown users get a zeroed state.
func (h *Handler) State(c *fiber.Ctx) error {
	fid, err := ParseFID(c.Params("fid"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid fid")
	}

	state, err := h.service.GetState(c.UserContext(), fid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to load state")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"fid":            state.FID,
		"streak_count":   state.StreakCount,
		"total_checkins": state.TotalCheckins,
		"last_checkin":   state.LastCheckin,
	})
}

// ParseFID parses a route parameter into a user identifier.
func ParseFID(raw string) (int64, error) {
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		return 0, ErrInvalidFID
	}
	return fid, nil
}
