package checkin

import (
	"time"

	"github.com/checkindaily/checkin_daily/internal/clock"
)

// Kind classifies the transition an incoming check-in produces.
type Kind int

const (
	// KindDuplicate means the user already checked in on the current
	// calendar day; nothing may be mutated.
	KindDuplicate Kind = iota
	// KindContinue extends an active streak by one day.
	KindContinue
	// KindReset starts a streak at 1, either for a new user or after one
	// or more missed days.
	KindReset
)

// Decision is the outcome of the streak state machine.
type Decision struct {
	Kind      Kind
	NewStreak int
}

// Decide applies the calendar-day streak rules to the user's current state.
// Days are compared in UTC; the rule is calendar-day based, not rolling 24h,
// so 23:59 followed by 00:01 the next day is a continuation.
func Decide(state State, now time.Time) Decision {
	if state.LastCheckin == nil {
		return Decision{Kind: KindReset, NewStreak: 1}
	}

	daysSince := clock.DaysBetween(clock.DayKey(*state.LastCheckin), clock.DayKey(now))

	switch {
	case daysSince <= 0:
		return Decision{Kind: KindDuplicate, NewStreak: state.StreakCount}
	case daysSince == 1:
		return Decision{Kind: KindContinue, NewStreak: state.StreakCount + 1}
	default:
		return Decision{Kind: KindReset, NewStreak: 1}
	}
}
