package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit logs one structured line per request, carrying the identifier set by
// RequestID so log lines correlate with responses.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.IP()),
		}
		if reqID, ok := c.Locals(requestIDHeader).(string); ok && reqID != "" {
			attrs = append(attrs, slog.String("request_id", reqID))
		}

		if err != nil {
			logger.Error("http request", append(attrs, slog.Any("error", err))...)
			return err
		}
		logger.Info("http request", attrs...)
		return nil
	}
}
