package analytics

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/checkindaily/checkin_daily/internal/checkin"
	"github.com/checkindaily/checkin_daily/internal/clock"
	"github.com/checkindaily/checkin_daily/internal/rewards"
)

// Service derives read-only statistics from the check-in and reward stores.
// It never mutates state and never sits on the check-in critical path; read
// failures degrade to zeroed stats instead of propagating.
type Service struct {
	checkins checkin.Repository
	rewards  rewards.Repository
	logger   *slog.Logger
}

// NewService builds an analytics service instance.
func NewService(checkins checkin.Repository, rewardsRepo rewards.Repository, logger *slog.Logger) *Service {
	return &Service{checkins: checkins, rewards: rewardsRepo, logger: logger}
}

// UserStats assembles per-user statistics. Trailing windows are calendar-day
// based (inclusive of today) using the shared clock.
func (s *Service) UserStats(ctx context.Context, fid int64, now time.Time) UserStats {
	stats := UserStats{FID: fid}
	now = now.UTC()

	state, err := s.checkins.GetState(ctx, fid)
	if err != nil && !errors.Is(err, checkin.ErrNotFound) {
		s.logger.Warn("analytics state read failed", "fid", fid, "error", err)
		return stats
	}
	stats.TotalCheckIns = state.TotalCheckins
	stats.CurrentStreak = state.StreakCount

	rewardState, err := s.rewards.Get(ctx, fid)
	if err != nil && !errors.Is(err, rewards.ErrNotFound) {
		s.logger.Warn("analytics rewards read failed", "fid", fid, "error", err)
		return stats
	}
	stats.TotalPointsEarned = rewardState.TotalPoints

	if stats.TotalCheckIns > 0 {
		stats.AveragePointsPerDay = stats.TotalPointsEarned / stats.TotalCheckIns
		rate := math.Min(float64(stats.TotalCheckIns)/365.0, 1.0) * 100
		stats.CheckInRate = int(math.Round(rate))
	}

	// Window bounds are anchored N calendar days back and include today, so
	// the "week" window spans up to 8 distinct days.
	if week, err := s.checkins.CountSince(ctx, fid, clock.DaysAgo(now, 7)); err == nil {
		stats.ThisWeekCheckIns = week
	} else {
		s.logger.Warn("analytics week count failed", "fid", fid, "error", err)
	}
	if month, err := s.checkins.CountSince(ctx, fid, clock.DaysAgo(now, 30)); err == nil {
		stats.ThisMonthCheckIns = month
	} else {
		s.logger.Warn("analytics month count failed", "fid", fid, "error", err)
	}

	return stats
}

// History returns the user's check-ins over the trailing number of days,
// newest first. Read failures degrade to an empty list.
func (s *Service) History(ctx context.Context, fid int64, days int, now time.Time) []HistoryEntry {
	if days <= 0 {
		days = 30
	}
	records, err := s.checkins.History(ctx, fid, clock.DaysAgo(now.UTC(), days))
	if err != nil {
		s.logger.Warn("analytics history read failed", "fid", fid, "error", err)
		return nil
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, HistoryEntry{
			CheckedInAt:  record.CheckedInAt,
			StreakAtTime: record.StreakAtTime,
		})
	}
	return entries
}

// Global assembles platform-wide totals.
func (s *Service) Global(ctx context.Context) GlobalStats {
	var stats GlobalStats

	users, checkins, active, err := s.checkins.GlobalCounts(ctx)
	if err != nil {
		s.logger.Warn("analytics global counts failed", "error", err)
		return stats
	}
	stats.TotalUsers = users
	stats.TotalCheckIns = checkins
	stats.ActiveStreaks = active

	if total, err := s.rewards.TotalAwarded(ctx); err == nil {
		stats.TotalPointsAwarded = total
	} else {
		s.logger.Warn("analytics total points failed", "error", err)
	}

	return stats
}
