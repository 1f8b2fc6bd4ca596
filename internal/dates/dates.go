// Package dates handles the plain calendar-day strings ("YYYY-MM-DD") every
// record is bucketed by. Stored dates are never reinterpreted against the
// viewer's timezone; the string itself is the source of truth.
package dates

import "time"

const DayFormat = "2006-01-02"

func Today() string {
	return time.Now().Format(DayFormat)
}

func Day(t time.Time) string {
	return t.Format(DayFormat)
}

func Valid(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}

// ValidClock reports whether s is an "HH:MM" clock string.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
