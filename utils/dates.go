// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates t to midnight in its location.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last second of t's day. Report and coupon date
// parameters are plain YYYY-MM-DD values, so ranges are made inclusive
// of the whole end day.
func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// DaysBetween counts calendar days from start to end, ignoring the
// time of day on either side.
func DaysBetween(start, end time.Time) int {
	return int(BeginningOfDay(end).Sub(BeginningOfDay(start)).Hours() / 24)
}
