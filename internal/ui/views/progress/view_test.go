package progress_test

import (
	"strings"
	"testing"
	"time"

	progressdto "serene/internal/modules/progress/dto"
	progressview "serene/internal/ui/views/progress"
)

func TestRenderHeatmapHasSixWeeks(t *testing.T) {
	t.Parallel()
	cells := make([]*progressdto.CalendarCell, 42)
	// October 2026 starts on a Thursday.
	for day := 1; day <= 31; day++ {
		cells[3+day] = &progressdto.CalendarCell{
			Date:      time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Day:       day,
			Completed: day%2 == 0,
		}
	}
	out := progressview.RenderHeatmap(progressdto.CalendarOutput{Year: 2026, Month: time.October, Cells: cells}, "2026-10-18")
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected title, weekday row and 6 weeks, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "October 2026") {
		t.Fatalf("missing month title: %q", lines[0])
	}
	if !strings.Contains(out, "31") {
		t.Fatalf("missing last day:\n%s", out)
	}
}
