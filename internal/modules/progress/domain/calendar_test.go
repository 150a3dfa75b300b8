package domain

import (
	"testing"
	"time"
)

func TestMonthGridShape(t *testing.T) {
	t.Parallel()
	for year := 2024; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := MonthGrid(year, month)
			if len(cells) != GridCells {
				t.Fatalf("%d-%02d: expected %d cells, got %d", year, month, GridCells, len(cells))
			}
			first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			offset := int(first.Weekday())
			for i := 0; i < offset; i++ {
				if cells[i] != nil {
					t.Fatalf("%d-%02d: expected leading placeholder at %d", year, month, i)
				}
			}
			days := DaysIn(year, month)
			for i := 0; i < days; i++ {
				c := cells[offset+i]
				if c == nil || c.Day != i+1 || c.Month != month {
					t.Fatalf("%d-%02d: expected day %d at cell %d, got %+v", year, month, i+1, offset+i, c)
				}
			}
			for i := offset + days; i < GridCells; i++ {
				if cells[i] != nil {
					t.Fatalf("%d-%02d: expected trailing placeholder at %d", year, month, i)
				}
			}
		}
	}
}

func TestHeatmapMarksCompletedDays(t *testing.T) {
	t.Parallel()
	s := DefaultSnapshot()
	s, _ = s.WithCompletion(Completion{DurationMinutes: 5, Day: day(2026, 10, 14)}, nil, at)
	cells := s.Heatmap(2026, time.October)
	completed := 0
	for _, c := range cells {
		if c != nil && c.Completed {
			completed++
			if c.Day != day(2026, 10, 14) {
				t.Fatalf("unexpected completed day %s", c.Day)
			}
		}
	}
	if completed != 1 {
		t.Fatalf("expected one completed cell, got %d", completed)
	}
}

func TestDayArithmetic(t *testing.T) {
	t.Parallel()
	if got := day(2024, 2, 28).AddDays(1); got != day(2024, 2, 29) {
		t.Fatalf("expected leap day, got %s", got)
	}
	if got := day(2026, 10, 14).WeekStart(); got != day(2026, 10, 11) {
		t.Fatalf("expected Sunday 2026-10-11, got %s", got)
	}
	loc := time.FixedZone("UTC+14", 14*3600)
	if got := DayOf(time.Date(2026, 10, 14, 23, 30, 0, 0, loc)); got != day(2026, 10, 14) {
		t.Fatalf("DayOf must use the time's own location, got %s", got)
	}
	parsed, err := ParseDay("2026-10-14")
	if err != nil || parsed != day(2026, 10, 14) {
		t.Fatalf("parse day: %v %s", err, parsed)
	}
}
