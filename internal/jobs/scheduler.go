// Package jobs runs scheduled background work: the daily check-in reminder
// broadcast and a platform stats snapshot log.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/checkindaily/checkin_daily/internal/analytics"
	"github.com/checkindaily/checkin_daily/internal/notification"
)

var reminderMessages = []string{
	"GM! Don't forget to check in today and keep your streak alive!",
	"Rise and grind! Your daily check-in is waiting.",
	"Another day, another opportunity to grow your streak!",
	"Your streak is calling! Don't let it reset today.",
}

// Scheduler owns the cron runner and its job dependencies.
type Scheduler struct {
	cron      *cron.Cron
	analytics *analytics.Service
	notifier  notification.Notifier
	logger    *slog.Logger
}

// NewScheduler creates a scheduler. Jobs run in UTC, matching the day
// boundary used by the streak engine.
func NewScheduler(analyticsSvc *analytics.Service, notifier notification.Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		analytics: analyticsSvc,
		notifier:  notifier,
		logger:    logger,
	}
}

// Start registers the reminder job on the given cron spec and starts the
// runner. An error is returned for an unparsable spec.
func (s *Scheduler) Start(ctx context.Context, reminderSpec string) error {
	if _, err := s.cron.AddFunc(reminderSpec, func() {
		s.runReminder(ctx)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "reminder_spec", reminderSpec)
	return nil
}

// Stop halts the runner and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runReminder(ctx context.Context) {
	msg := notification.Message{
		Kind:        notification.KindDailyReminder,
		Destination: "broadcast",
		Body:        reminderMessages[time.Now().UTC().YearDay()%len(reminderMessages)],
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("reminder broadcast failed", "error", err)
	}

	stats := s.analytics.Global(ctx)
	s.logger.Info("daily stats snapshot",
		"total_users", stats.TotalUsers,
		"total_checkins", stats.TotalCheckIns,
		"total_points_awarded", stats.TotalPointsAwarded,
		"active_streaks", stats.ActiveStreaks,
	)
}
