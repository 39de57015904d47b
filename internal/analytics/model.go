package analytics

import "time"

// UserStats are read-only derivations over a user's check-in and reward
// history. CheckInRate is a bounded approximation against a 365-day year,
// not a true attendance rate for the account's age.
type UserStats struct {
	FID                 int64 `json:"fid"`
	TotalCheckIns       int   `json:"totalCheckIns"`
	CurrentStreak       int   `json:"currentStreak"`
	AveragePointsPerDay int   `json:"averagePointsPerDay"`
	TotalPointsEarned   int   `json:"totalPointsEarned"`
	CheckInRate         int   `json:"checkInRate"`
	ThisWeekCheckIns    int   `json:"thisWeekCheckIns"`
	ThisMonthCheckIns   int   `json:"thisMonthCheckIns"`
}

// HistoryEntry is one check-in as exposed on the history endpoint.
type HistoryEntry struct {
	CheckedInAt  time.Time `json:"checkedInAt"`
	StreakAtTime int       `json:"streakAtTime"`
}

// GlobalStats are platform-wide totals.
type GlobalStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalCheckIns      int `json:"totalCheckIns"`
	TotalPointsAwarded int `json:"totalPointsAwarded"`
	ActiveStreaks      int `json:"activeStreaks"`
}
