package rewards

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no rewards state exists for the user yet.
var ErrNotFound = errors.New("rewards state not found")

// Award describes one computed reward to be persisted.
type Award struct {
	FID          int64
	PointsEarned int
	StreakAtTime int
	Multiplier   float64
	EarnedAt     time.Time
}

// Repository persists rewards state and the append-only audit stream.
//
// Add must be atomic: add the earned points to the stored total, derive the
// tier from the resulting total, and append the audit record in the same
// transaction. Points never decrease.
type Repository interface {
	Get(ctx context.Context, fid int64) (State, error)
	Add(ctx context.Context, award Award) (State, error)
	TotalAwarded(ctx context.Context) (int, error)
}
