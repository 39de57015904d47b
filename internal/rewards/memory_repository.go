package rewards

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	states  map[int64]State
	records map[int64][]Record
}

// NewMemoryRepository constructs an in-memory repository for tests and
// dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		states:  make(map[int64]State),
		records: make(map[int64][]Record),
	}
}

func (r *memoryRepository) Get(_ context.Context, fid int64) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[fid]
	if !ok {
		return State{}, ErrNotFound
	}
	return state, nil
}

func (r *memoryRepository) Add(_ context.Context, award Award) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[award.FID]
	if !ok {
		state = State{FID: award.FID}
	}

	state.TotalPoints += award.PointsEarned
	state.Tier = TierFromPoints(state.TotalPoints)
	at := award.EarnedAt
	state.LastRewardAt = &at
	state.UpdatedAt = at
	r.states[award.FID] = state

	r.records[award.FID] = append(r.records[award.FID], Record{
		ID:                uuid.NewString(),
		FID:               award.FID,
		PointsEarned:      award.PointsEarned,
		StreakAtTime:      award.StreakAtTime,
		MultiplierApplied: award.Multiplier,
		EarnedAt:          award.EarnedAt,
	})

	return state, nil
}

func (r *memoryRepository) TotalAwarded(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, state := range r.states {
		total += state.TotalPoints
	}
	return total, nil
}
