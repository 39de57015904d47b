package checkin

import "time"

// State is the per-user check-in record. streak_count counts consecutive
// calendar days ending at the day of LastCheckin; TotalCheckins always equals
// the number of history records for the user.
type State struct {
	FID           int64
	LastCheckin   *time.Time
	StreakCount   int
	TotalCheckins int
	Profile       Profile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profile carries optional pass-through identity fields delivered alongside a
// check-in. They never influence streak or reward logic.
type Profile struct {
	Username    string
	DisplayName string
	AvatarURL   string
}

// Merge overlays non-empty fields of other onto p.
func (p Profile) Merge(other Profile) Profile {
	if other.Username != "" {
		p.Username = other.Username
	}
	if other.DisplayName != "" {
		p.DisplayName = other.DisplayName
	}
	if other.AvatarURL != "" {
		p.AvatarURL = other.AvatarURL
	}
	return p
}

// HistoryRecord is the immutable log entry for one credited check-in.
// StreakAtTime is the streak count after the check-in was applied.
type HistoryRecord struct {
	ID           string
	FID          int64
	CheckedInAt  time.Time
	StreakAtTime int
}

// Outcome is returned to callers of ProcessCheckin. PointsEarned and Tier are
// only meaningful when AlreadyCheckedIn is false.
type Outcome struct {
	Streak           int
	AlreadyCheckedIn bool
	PointsEarned     int
	Tier             string
}
