package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DayBounds returns the [start, end) instants of a calendar date in loc.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// LocalDate formats an instant as the calendar date it falls on in loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
