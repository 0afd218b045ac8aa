package utils

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds("2024-06")
	if err != nil {
		t.Fatal(err)
	}

	wantStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// The last instant of the month sits inside the half-open range
	lastInstant := time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.Local)
	if !(lastInstant.Compare(start) >= 0 && lastInstant.Before(end)) {
		t.Errorf("last instant of June not inside [start, end)")
	}
	if wantEnd.Before(end) || end.Before(wantEnd) {
		t.Errorf("first instant of July must be the exclusive bound")
	}
}

func TestMonthBoundsDecember(t *testing.T) {
	start, end, err := MonthBounds("2024-12")
	if err != nil {
		t.Fatal(err)
	}
	if start.Year() != 2024 || start.Month() != time.December {
		t.Errorf("start = %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.January {
		t.Errorf("end = %v, want rollover into 2025-01", end)
	}
}

func TestMonthBoundsInvalid(t *testing.T) {
	for _, bad := range []string{"", "2024", "2024-13", "junk"} {
		if _, _, err := MonthBounds(bad); err == nil {
			t.Errorf("MonthBounds(%q) expected error", bad)
		}
	}
}
