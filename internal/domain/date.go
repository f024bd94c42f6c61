package domain

import "time"

// DateLayout is the calendar-day format used for ids, seeds and storage.
const DateLayout = "2006-01-02"

// DateKey returns the calendar day of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// PreviousDateKey returns the calendar day before t.
func PreviousDateKey(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
