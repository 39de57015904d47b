// Package clock converts instants to calendar-day keys. All day comparisons
// in the application go through this package so that a single reference
// timezone (UTC) is used everywhere.
package clock

import "time"

const secondsPerDay = 24 * 60 * 60

// DayKey returns the calendar day of t as a count of days since the Unix
// epoch, evaluated in UTC.
func DayKey(t time.Time) int {
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / secondsPerDay)
}

// DaysBetween returns the number of calendar days from key a to key b.
// Negative when b precedes a.
func DaysBetween(a, b int) int {
	return b - a
}

// StartOfDay returns UTC midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysAgo returns UTC midnight of the day n days before t. Used for
// trailing-window queries (inclusive of the current day).
func DaysAgo(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, -n)
}
