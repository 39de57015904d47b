package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/checkindaily/checkin_daily/internal/logging"
	"github.com/checkindaily/checkin_daily/internal/notification"
	"github.com/checkindaily/checkin_daily/internal/rewards"
)

func newTestService() (*Service, Repository, rewards.Repository) {
	repo := NewMemoryRepository()
	rewardsRepo := rewards.NewMemoryRepository()
	svc := NewService(repo, rewards.NewService(rewardsRepo), nil, logging.Discard())
	return svc, repo, rewardsRepo
}

func day(d int, hh, mm int) time.Time {
	return time.Date(2025, 3, d, hh, mm, 0, 0, time.UTC)
}

func TestProcessCheckinRejectsInvalidFID(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.ProcessCheckin(context.Background(), Input{FID: 0}); !errors.Is(err, ErrInvalidFID) {
		t.Fatalf("expected ErrInvalidFID, got %v", err)
	}
	if _, err := svc.ProcessCheckin(context.Background(), Input{FID: -3}); !errors.Is(err, ErrInvalidFID) {
		t.Fatalf("expected ErrInvalidFID, got %v", err)
	}
}

func TestFirstCheckinScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	outcome, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(1, 9, 0)})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if outcome.AlreadyCheckedIn {
		t.Fatalf("first checkin flagged as duplicate")
	}
	if outcome.Streak != 1 || outcome.PointsEarned != 10 || outcome.Tier != rewards.TierBronze {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestSameDayCheckinIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(1, 9, 0)}); err != nil {
		t.Fatalf("first checkin: %v", err)
	}

	for _, at := range []time.Time{day(1, 9, 1), day(1, 15, 0), day(1, 23, 59)} {
		outcome, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: at})
		if err != nil {
			t.Fatalf("duplicate checkin at %v: %v", at, err)
		}
		if !outcome.AlreadyCheckedIn || outcome.Streak != 1 {
			t.Fatalf("expected idempotent duplicate, got %+v", outcome)
		}
		if outcome.PointsEarned != 0 {
			t.Fatalf("duplicate must not award points, got %d", outcome.PointsEarned)
		}
	}

	records, err := repo.History(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly one history record, got %d", len(records))
	}
}

func TestStreakContinuityAndSevenDayBonus(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	var outcome Outcome
	var err error
	for d := 1; d <= 7; d++ {
		outcome, err = svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(d, 10, 0)})
		if err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
		if outcome.Streak != d {
			t.Fatalf("day %d: expected streak %d, got %d", d, d, outcome.Streak)
		}
	}

	// Day 7: streak bonus 1.2 kicks in, still bronze (60 points so far).
	if outcome.PointsEarned != 12 {
		t.Fatalf("day 7: expected 12 points, got %d", outcome.PointsEarned)
	}
}

func TestMissedDayResetsStreak(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for d := 1; d <= 7; d++ {
		if _, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(d, 10, 0)}); err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
	}

	// Skip days 8 and 9, return on day 10.
	outcome, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(10, 10, 0)})
	if err != nil {
		t.Fatalf("day 10: %v", err)
	}
	if outcome.Streak != 1 {
		t.Fatalf("expected reset to 1, got %d", outcome.Streak)
	}
}

func TestMidnightBoundaryContinues(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(1, 23, 59)}); err != nil {
		t.Fatalf("first checkin: %v", err)
	}

	outcome, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(2, 0, 1)})
	if err != nil {
		t.Fatalf("second checkin: %v", err)
	}
	if outcome.AlreadyCheckedIn || outcome.Streak != 2 {
		t.Fatalf("expected continuation across midnight, got %+v", outcome)
	}
}

func TestTotalCheckinsMatchesHistory(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// Checkins with a gap in the middle.
	for _, d := range []int{1, 2, 3, 6, 7, 10} {
		if _, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(d, 12, 0)}); err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
	}

	state, err := svc.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	records, err := repo.History(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if state.TotalCheckins != len(records) {
		t.Fatalf("total_checkins %d != history count %d", state.TotalCheckins, len(records))
	}
	if state.TotalCheckins != 6 {
		t.Fatalf("expected 6 checkins, got %d", state.TotalCheckins)
	}
}

func TestConcurrentSameDayCheckinsCreditOnce(t *testing.T) {
	svc, repo, rewardsRepo := newTestService()
	ctx := context.Background()
	now := day(1, 9, 0)

	const callers = 16
	credited := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: now})
			if err != nil {
				t.Errorf("checkin: %v", err)
				return
			}
			if !outcome.AlreadyCheckedIn {
				mu.Lock()
				credited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if credited != 1 {
		t.Fatalf("expected exactly one credited checkin, got %d", credited)
	}
	records, err := repo.History(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one history record, got %d", len(records))
	}
	state, err := rewardsRepo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("rewards: %v", err)
	}
	if state.TotalPoints != 10 {
		t.Fatalf("expected a single 10 point award, got %d", state.TotalPoints)
	}
}

func TestGetStateDefaultsForUnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	state, err := svc.GetState(context.Background(), 99)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.FID != 99 || state.StreakCount != 0 || state.TotalCheckins != 0 || state.LastCheckin != nil {
		t.Fatalf("expected zeroed state, got %+v", state)
	}
}

func TestProfilePassThrough(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProcessCheckin(ctx, Input{
		FID:     1,
		Now:     day(1, 9, 0),
		Profile: Profile{Username: "alice", AvatarURL: "https://example.com/a.png"},
	}); err != nil {
		t.Fatalf("first checkin: %v", err)
	}

	// Next day: display name arrives, earlier fields must survive.
	if _, err := svc.ProcessCheckin(ctx, Input{
		FID:     1,
		Now:     day(2, 9, 0),
		Profile: Profile{DisplayName: "Alice"},
	}); err != nil {
		t.Fatalf("second checkin: %v", err)
	}

	state, err := svc.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Profile.Username != "alice" || state.Profile.DisplayName != "Alice" || state.Profile.AvatarURL != "https://example.com/a.png" {
		t.Fatalf("profile fields lost: %+v", state.Profile)
	}
}

type testNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg.Kind+":"+msg.Body)
	return nil
}

func TestMilestoneNotification(t *testing.T) {
	repo := NewMemoryRepository()
	notifier := &testNotifier{}
	svc := NewService(repo, rewards.NewService(rewards.NewMemoryRepository()), notifier, logging.Discard())
	ctx := context.Background()

	for d := 1; d <= 7; d++ {
		if _, err := svc.ProcessCheckin(ctx, Input{FID: 1, Now: day(d, 10, 0)}); err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one milestone notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0] != notification.KindStreakMilestone+":You've reached a 7 day streak!" {
		t.Fatalf("unexpected notification: %s", notifier.sent[0])
	}
}
