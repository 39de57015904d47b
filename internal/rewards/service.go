package rewards

import (
	"context"
	"errors"
	"time"
)

// Service exposes reward reads and the award path used by the check-in flow.
type Service struct {
	repo Repository
}

// NewService builds a rewards service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's rewards state, defaulting to zero points and the
// bronze tier when the user has never been awarded.
func (s *Service) Get(ctx context.Context, fid int64) (State, error) {
	state, err := s.repo.Get(ctx, fid)
	if errors.Is(err, ErrNotFound) {
		return State{FID: fid, Tier: TierBronze}, nil
	}
	if err != nil {
		return State{}, err
	}
	return state, nil
}

// Award computes and persists the reward for one credited check-in. The
// multiplier snapshot is taken from the points total before the award; the
// reported tier is derived from the total after it. Callers serialize awards
// per user through the once-per-day check-in gate.
func (s *Service) Award(ctx context.Context, fid int64, streak int, now time.Time) (AwardResult, error) {
	current, err := s.Get(ctx, fid)
	if err != nil {
		return AwardResult{}, err
	}

	earned, multiplier := ComputeReward(streak, current.TotalPoints)

	state, err := s.repo.Add(ctx, Award{
		FID:          fid,
		PointsEarned: earned,
		StreakAtTime: streak,
		Multiplier:   multiplier,
		EarnedAt:     now.UTC(),
	})
	if err != nil {
		return AwardResult{}, err
	}

	return AwardResult{
		PointsEarned:   earned,
		TotalPoints:    state.TotalPoints,
		Tier:           state.Tier,
		MultiplierTier: TierFromPoints(current.TotalPoints),
	}, nil
}
