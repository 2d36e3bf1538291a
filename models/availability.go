package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AvailabilityWindow is one stretch of a staff member's weekly schedule.
// A staff member may have several windows on the same day (split shifts),
// but windows for the same staff/day must not overlap; that is enforced at
// write time by the availability handlers, never re-checked at booking time.
type AvailabilityWindow struct {
	gorm.Model
	BusinessID  uint      `json:"business_id" gorm:"index"`
	StaffID     uint      `json:"staff_id" gorm:"index"`
	Staff       Staff     `json:"-" gorm:"foreignKey:StaffID"`
	DayOfWeek   DayOfWeek `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime   string    `json:"start_time"`  // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`    // Format "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}

// ParseClock converts an "HH:MM" string to minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockRange returns the window bounds as minutes after midnight.
func (w *AvailabilityWindow) ClockRange() (startMin, endMin int, err error) {
	startMin, err = ParseClock(w.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = ParseClock(w.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return startMin, endMin, nil
}

// Bounds resolves the window to concrete instants on the given calendar day
// in loc. Building the instants from wall-clock components keeps the window
// correct across DST shifts; callers compare the results as UTC instants.
func (w *AvailabilityWindow) Bounds(year int, month time.Month, day int, loc *time.Location) (start, end time.Time, err error) {
	startMin, endMin, err := w.ClockRange()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(year, month, day, startMin/60, startMin%60, 0, 0, loc)
	end = time.Date(year, month, day, endMin/60, endMin%60, 0, 0, loc)
	return start, end, nil
}
