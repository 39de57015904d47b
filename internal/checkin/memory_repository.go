package checkin

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	states  map[int64]State
	history map[int64][]HistoryRecord
}

// NewMemoryRepository constructs an in-memory repository for tests and
// dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		states:  make(map[int64]State),
		history: make(map[int64][]HistoryRecord),
	}
}

func (r *memoryRepository) GetState(_ context.Context, fid int64) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[fid]
	if !ok {
		return State{}, ErrNotFound
	}
	return state, nil
}

func (r *memoryRepository) Apply(_ context.Context, credit Credit) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, exists := r.states[credit.FID]
	if exists {
		if !sameInstant(state.LastCheckin, credit.ExpectedLastCheckin) {
			return State{}, ErrConflict
		}
	} else if credit.ExpectedLastCheckin != nil {
		return State{}, ErrConflict
	}

	record := HistoryRecord{
		ID:           uuid.NewString(),
		FID:          credit.FID,
		CheckedInAt:  credit.CheckedInAt,
		StreakAtTime: credit.NewStreak,
	}
	r.history[credit.FID] = append(r.history[credit.FID], record)

	at := credit.CheckedInAt
	if !exists {
		state = State{FID: credit.FID, CreatedAt: at}
	}
	state.LastCheckin = &at
	state.StreakCount = credit.NewStreak
	state.TotalCheckins = len(r.history[credit.FID])
	state.Profile = state.Profile.Merge(credit.Profile)
	state.UpdatedAt = at
	r.states[credit.FID] = state

	return state, nil
}

func (r *memoryRepository) CountSince(_ context.Context, fid int64, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, record := range r.history[fid] {
		if !record.CheckedInAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) History(_ context.Context, fid int64, since time.Time) ([]HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []HistoryRecord
	for _, record := range r.history[fid] {
		if !record.CheckedInAt.Before(since) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckedInAt.After(out[j].CheckedInAt)
	})
	return out, nil
}

func (r *memoryRepository) GlobalCounts(_ context.Context) (int, int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := len(r.states)
	checkins := 0
	for _, records := range r.history {
		checkins += len(records)
	}
	active := 0
	for _, state := range r.states {
		if state.StreakCount > 0 {
			active++
		}
	}
	return users, checkins, active, nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
