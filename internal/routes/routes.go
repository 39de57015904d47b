package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/checkindaily/checkin_daily/internal/analytics"
	"github.com/checkindaily/checkin_daily/internal/checkin"
	"github.com/checkindaily/checkin_daily/internal/config"
	"github.com/checkindaily/checkin_daily/internal/middleware"
	"github.com/checkindaily/checkin_daily/internal/notification"
	"github.com/checkindaily/checkin_daily/internal/rewards"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Services are the wired domain services, exposed so main can hand them to
// the scheduler.
type Services struct {
	Checkin   *checkin.Service
	Rewards   *rewards.Service
	Analytics *analytics.Service
	Notifier  notification.Notifier
}

// Setup configures middlewares and all application routes. Without a DB the
// repositories fall back to in-memory backends (dev mode only; config
// enforces the stores elsewhere).
func Setup(app *fiber.App, d Deps) (Services, error) {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var checkinRepo checkin.Repository
	var rewardsRepo rewards.Repository
	if d.DB != nil {
		checkinRepo = checkin.NewPostgresRepository(d.DB)
		rewardsRepo = rewards.NewPostgresRepository(d.DB)
	} else {
		checkinRepo = checkin.NewMemoryRepository()
		rewardsRepo = rewards.NewMemoryRepository()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	rewardsSvc := rewards.NewService(rewardsRepo)
	checkinSvc := checkin.NewService(checkinRepo, rewardsSvc, notifier, d.Logger)
	analyticsSvc := analytics.NewService(checkinRepo, rewardsRepo, d.Logger)

	checkinHandler := checkin.NewHandler(checkinSvc)
	rewardsHandler := rewards.NewHandler(rewardsSvc)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.CheckinRateLimit(d.Cache, d.Cfg.CheckinRatePerMinute)
	RegisterCheckinRoutes(api, checkinHandler, rateLimiter)
	RegisterRewardsRoutes(api, rewardsHandler)
	RegisterAnalyticsRoutes(api, analyticsHandler)

	return Services{
		Checkin:   checkinSvc,
		Rewards:   rewardsSvc,
		Analytics: analyticsSvc,
		Notifier:  notifier,
	}, nil
}
