package rewards

import "time"

// State is the per-user rewards record. Tier is derived from TotalPoints on
// every write and is never settable on its own.
type State struct {
	FID          int64
	TotalPoints  int
	Tier         string
	LastRewardAt *time.Time
	UpdatedAt    time.Time
}

// Record is the immutable audit entry for one award.
type Record struct {
	ID                string
	FID               int64
	PointsEarned      int
	StreakAtTime      int
	MultiplierApplied float64
	EarnedAt          time.Time
}

// AwardResult reports the outcome of crediting one award. Tier is the
// post-event tier derived from the new total; MultiplierTier is the tier the
// multiplier was based on (pre-event), retained separately because the two
// can differ when the award crosses a threshold.
type AwardResult struct {
	PointsEarned   int
	TotalPoints    int
	Tier           string
	MultiplierTier string
}
