package utils

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-01-05", time.UTC)
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if !start.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %s", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("length = %s, want 24h", end.Sub(start))
	}

	for _, bad := range []string{"", "05-01-2026", "2026-13-01", "yesterday"} {
		if _, _, err := DayBounds(bad, time.UTC); err == nil {
			t.Errorf("DayBounds(%q): expected an error", bad)
		}
	}
}

func TestLocalDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 02:00 UTC is still the previous evening on the US east coast.
	instant := time.Date(2026, 1, 6, 2, 0, 0, 0, time.UTC)
	if got := LocalDate(instant, ny); got != "2026-01-05" {
		t.Fatalf("LocalDate = %q, want 2026-01-05", got)
	}
	if got := LocalDate(instant, time.UTC); got != "2026-01-06" {
		t.Fatalf("LocalDate = %q, want 2026-01-06", got)
	}
}
