package checkin

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConflict indicates the conditional credit lost a race: the user's
	// last_checkin no longer matches the value observed before deciding.
	// Callers re-read state and re-decide.
	ErrConflict = errors.New("checkin state conflict")

	// ErrNotFound indicates no state exists for the user yet. "Never
	// checked in" is a valid condition, not a failure.
	ErrNotFound = errors.New("checkin state not found")
)

// Credit describes one decided check-in to be persisted.
type Credit struct {
	FID         int64
	CheckedInAt time.Time
	NewStreak   int
	Profile     Profile
	// ExpectedLastCheckin is the last_checkin value the decision was based
	// on (nil for a first-ever check-in). The write must fail with
	// ErrConflict when the stored value differs.
	ExpectedLastCheckin *time.Time
}

// Repository persists check-in state and the append-only history stream.
//
// Apply is the single mutating entry point and must be atomic: insert the
// history record, recompute total_checkins as the count of history records,
// and update the state row — all or nothing, guarded by the conditional
// compare on last_checkin. The stored counter is never incremented
// independently of the history stream.
type Repository interface {
	GetState(ctx context.Context, fid int64) (State, error)
	Apply(ctx context.Context, credit Credit) (State, error)
	CountSince(ctx context.Context, fid int64, since time.Time) (int, error)
	History(ctx context.Context, fid int64, since time.Time) ([]HistoryRecord, error)
	GlobalCounts(ctx context.Context) (users int, checkins int, activeStreaks int, err error)
}
