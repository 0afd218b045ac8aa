// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the half-open range [start, end) covering the
// calendar month of a "YYYY-MM" key in local time. The last instant of
// the month (23:59:59.999...) is inside the range, the first instant of
// the next month is not.
func MonthBounds(monthYear string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", monthYear, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid monthYear %q: %w", monthYear, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return start, end, nil
}
