package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/checkindaily/checkin_daily/internal/notification"
	"github.com/checkindaily/checkin_daily/internal/rewards"
)

// ErrInvalidFID rejects check-ins without a usable user identifier before any
// storage access.
var ErrInvalidFID = errors.New("invalid fid")

// maxCreditAttempts bounds the re-read/re-decide loop when a conditional
// credit loses a race. One retry is normally enough: the winner's write turns
// the retried decision into a duplicate.
const maxCreditAttempts = 3

// Service orchestrates the check-in flow: read state, decide the streak
// transition, persist the credit, then award points.
type Service struct {
	repo     Repository
	rewards  *rewards.Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the check-in orchestrator.
func NewService(repo Repository, rewardsSvc *rewards.Service, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, rewards: rewardsSvc, notifier: notifier, logger: logger}
}

// Input carries one check-in request. Now defaults to the current instant
// when zero; Profile fields are optional pass-through data.
type Input struct {
	FID     int64
	Now     time.Time
	Profile Profile
}

// ProcessCheckin credits at most one check-in per user per UTC calendar day.
// Duplicate calls on the same day are idempotent no-ops that report the
// unchanged streak. The history append, the total_checkins recompute and the
// state update happen in one conditional write; losing the condition means
// another call credited concurrently, so the state is re-read and re-decided.
func (s *Service) ProcessCheckin(ctx context.Context, input Input) (Outcome, error) {
	if input.FID <= 0 {
		return Outcome{}, ErrInvalidFID
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	for attempt := 0; attempt < maxCreditAttempts; attempt++ {
		state, err := s.GetState(ctx, input.FID)
		if err != nil {
			return Outcome{}, fmt.Errorf("read checkin state: %w", err)
		}

		decision := Decide(state, now)
		if decision.Kind == KindDuplicate {
			return s.duplicateOutcome(ctx, state)
		}

		credited, err := s.repo.Apply(ctx, Credit{
			FID:                 input.FID,
			CheckedInAt:         now,
			NewStreak:           decision.NewStreak,
			Profile:             input.Profile,
			ExpectedLastCheckin: state.LastCheckin,
		})
		if errors.Is(err, ErrConflict) {
			s.logger.Debug("checkin credit conflict, retrying", "fid", input.FID, "attempt", attempt)
			continue
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("credit checkin: %w", err)
		}

		return s.finishCredit(ctx, credited, now)
	}

	return Outcome{}, fmt.Errorf("credit checkin for fid %d: %w", input.FID, ErrConflict)
}

// finishCredit awards points for a freshly credited check-in and emits the
// milestone notification. The credit itself stands even when the award
// fails; the error is surfaced so the caller can see the points were not
// applied, and a same-day retry is a safe duplicate.
func (s *Service) finishCredit(ctx context.Context, state State, now time.Time) (Outcome, error) {
	award, err := s.rewards.Award(ctx, state.FID, state.StreakCount, now)
	if err != nil {
		s.logger.Error("reward award failed after credited checkin", "fid", state.FID, "streak", state.StreakCount, "error", err)
		return Outcome{Streak: state.StreakCount}, fmt.Errorf("award reward: %w", err)
	}

	if s.notifier != nil {
		if msg, ok := notification.MilestoneMessage(state.FID, state.StreakCount); ok {
			if err := s.notifier.Send(ctx, msg); err != nil {
				s.logger.Warn("milestone notification failed", "fid", state.FID, "error", err)
			}
		}
	}

	return Outcome{
		Streak:       state.StreakCount,
		PointsEarned: award.PointsEarned,
		Tier:         award.Tier,
	}, nil
}

// duplicateOutcome reports the unchanged streak and current tier without
// touching any state.
func (s *Service) duplicateOutcome(ctx context.Context, state State) (Outcome, error) {
	outcome := Outcome{Streak: state.StreakCount, AlreadyCheckedIn: true}
	current, err := s.rewards.Get(ctx, state.FID)
	if err != nil {
		// The duplicate answer is still valid without the tier.
		s.logger.Warn("rewards read failed on duplicate checkin", "fid", state.FID, "error", err)
		return outcome, nil
	}
	outcome.Tier = current.Tier
	return outcome, nil
}

// GetState returns the user's check-in state, defaulting to a zeroed state
// for users who have never checked in.
func (s *Service) GetState(ctx context.Context, fid int64) (State, error) {
	if fid <= 0 {
		return State{}, ErrInvalidFID
	}
	state, err := s.repo.GetState(ctx, fid)
	if errors.Is(err, ErrNotFound) {
		return State{FID: fid}, nil
	}
	if err != nil {
		return State{}, err
	}
	return state, nil
}
