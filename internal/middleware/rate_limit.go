package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// CheckinRateLimit caps check-in attempts per user per minute using Redis if
// available. The daily gate already prevents double credits; this only
// shields the store from hammering clients.
func CheckinRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		var req struct {
			FID int64 `json:"fid"`
		}
		_ = c.BodyParser(&req)
		key := "rl:checkin:"
		if req.FID > 0 {
			key += strconv.FormatInt(req.FID, 10)
		} else {
			key += c.IP()
		}
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many check-in attempts, try again later")
		}
		return c.Next()
	}
}
