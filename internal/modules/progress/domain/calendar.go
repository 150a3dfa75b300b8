package domain

import "time"

// GridCells is six full weeks, enough for any month starting on any weekday.
const GridCells = 42

// MonthGrid lays a month out on a Sunday-first 6x7 grid. Cells before the
// first and after the last day of the month are nil.
func MonthGrid(year int, month time.Month) []*Day {
	first := DayOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	offset := int(first.Weekday())
	days := DaysIn(first.Year, first.Month)

	cells := make([]*Day, GridCells)
	for i := 0; i < days; i++ {
		d := first.AddDays(i)
		cells[offset+i] = &d
	}
	return cells
}

// HeatCell is one day of the completion heatmap.
type HeatCell struct {
	Day       Day
	Completed bool
}

// Heatmap decorates MonthGrid with completion flags from s.
func (s Snapshot) Heatmap(year int, month time.Month) []*HeatCell {
	grid := MonthGrid(year, month)
	cells := make([]*HeatCell, len(grid))
	for i, d := range grid {
		if d == nil {
			continue
		}
		cells[i] = &HeatCell{Day: *d, Completed: s.HasCompleted(*d)}
	}
	return cells
}
