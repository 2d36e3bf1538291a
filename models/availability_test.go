package models

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestParseClock(t *testing.T) {
	valid := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:30", 570},
		{"23:59", 1439},
	}
	for _, tc := range valid {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	invalid := []string{"", "9", "24:00", "12:60", "noon", "09-30"}
	for _, in := range invalid {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q): expected an error", in)
		}
	}
}

func TestClockRange(t *testing.T) {
	w := AvailabilityWindow{StartTime: "09:00", EndTime: "17:30"}
	start, end, err := w.ClockRange()
	if err != nil {
		t.Fatalf("ClockRange: %v", err)
	}
	if start != 540 || end != 1050 {
		t.Fatalf("ClockRange = %d, %d; want 540, 1050", start, end)
	}

	w.EndTime = "late"
	if _, _, err := w.ClockRange(); err == nil {
		t.Fatal("expected an error for a malformed end time")
	}
}

func TestBoundsFollowDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	w := AvailabilityWindow{StartTime: "09:00", EndTime: "12:00"}

	// Monday 2026-01-05, Eastern Standard Time: 09:00 local is 14:00 UTC.
	start, end, err := w.Bounds(2026, time.January, 5, loc)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !start.UTC().Equal(time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("EST start = %s, want 14:00 UTC", start.UTC())
	}
	if !end.UTC().Equal(time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("EST end = %s, want 17:00 UTC", end.UTC())
	}

	// 2026-03-08 is the spring-forward Sunday; the same wall clock is now
	// 13:00 UTC. The window must track the wall clock, not the UTC offset.
	start, end, err = w.Bounds(2026, time.March, 8, loc)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !start.UTC().Equal(time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("EDT start = %s, want 13:00 UTC", start.UTC())
	}
	if end.Sub(start) != 3*time.Hour {
		t.Fatalf("window length = %s, want 3h", end.Sub(start))
	}
}

func TestBoundsRejectsMalformedWindow(t *testing.T) {
	w := AvailabilityWindow{Model: gorm.Model{ID: 4}, StartTime: "09:00", EndTime: "25:00"}
	if _, _, err := w.Bounds(2026, time.January, 5, time.UTC); err == nil {
		t.Fatal("expected an error for hour 25")
	}
}
