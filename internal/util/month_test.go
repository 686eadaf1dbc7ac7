package util

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		month     time.Month
		year      int
		wantStart string
		wantEnd   string
	}{
		{time.June, 2023, "2023-06-01", "2023-07-01"},
		{time.December, 2023, "2023-12-01", "2024-01-01"},
		{time.January, 2024, "2024-01-01", "2024-02-01"},
		{time.February, 2024, "2024-02-01", "2024-03-01"}, // leap year
	}

	for _, tt := range tests {
		start, end := MonthRange(tt.month, tt.year)
		if got := start.Format("2006-01-02"); got != tt.wantStart {
			t.Errorf("MonthRange(%v, %d) start = %s, want %s", tt.month, tt.year, got, tt.wantStart)
		}
		if got := end.Format("2006-01-02"); got != tt.wantEnd {
			t.Errorf("MonthRange(%v, %d) end = %s, want %s", tt.month, tt.year, got, tt.wantEnd)
		}
	}
}

func TestMonthRange_CoversWholeMonth(t *testing.T) {
	start, end := MonthRange(time.June, 2023)

	first := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2023, time.June, 30, 23, 59, 59, 0, time.UTC)

	if first.Before(start) || !last.Before(end) {
		t.Errorf("Expected [%v, %v) to contain the full month", start, end)
	}
}

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 5},   // June -> May
		{2026, 12, 2026, 11}, // Dec -> Nov
		{2026, 2, 2026, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	// January -> December of previous year
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}
}

func TestIsHistoricalMonth(t *testing.T) {
	now := time.Now()
	currentYear := now.Year()
	currentMonth := int(now.Month())

	if !IsHistoricalMonth(currentYear-1, 12) {
		t.Error("Expected last year's December to be historical")
	}
	if IsHistoricalMonth(currentYear, currentMonth) {
		t.Error("Expected the current month not to be historical")
	}
	if IsHistoricalMonth(currentYear+1, 1) {
		t.Error("Expected a future month not to be historical")
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.June, 30},
		{2023, time.December, 31},
		{2023, time.February, 28},
		{2024, time.February, 29}, // leap year
	}

	for _, tt := range tests {
		if got := LastDayOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("LastDayOfMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
