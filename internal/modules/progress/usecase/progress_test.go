package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	progressout "serene/internal/modules/progress/adapter/out"
	"serene/internal/modules/progress/domain"
	"serene/internal/modules/progress/dto"
	progressin "serene/internal/modules/progress/port/in"
	"serene/internal/modules/progress/service"
	"serene/internal/modules/progress/usecase"
	themeusecase "serene/internal/modules/theme/usecase"
	apperrors "serene/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

func newInteractor(clk *fakeClock) progressin.Usecase {
	svc := service.NewProgressService(
		progressout.NewMemoryKVStore(),
		progressout.NewThemeCatalogAdapter(themeusecase.NewInteractor()),
		clk,
		hclog.NewNullLogger(),
	)
	return usecase.NewInteractor(svc, clk)
}

func TestRecordDefaultsDayToToday(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC)}}
	uc := newInteractor(clk)

	out, err := uc.RecordSessionCompletion(context.Background(), dto.RecordInput{DurationMinutes: 10, ThemeID: "ocean"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(out.Snapshot.CompletedDates) != 1 || out.Snapshot.CompletedDates[0] != "2026-10-14" {
		t.Fatalf("expected today's date, got %v", out.Snapshot.CompletedDates)
	}
	if out.Snapshot.WeeklyMinutes[time.Wednesday] != 10 {
		t.Fatalf("expected Wednesday bucket, got %v", out.Snapshot.WeeklyMinutes)
	}
	if len(out.NewlyUnlocked) != 1 || out.NewlyUnlocked[0].ID != domain.AchievementFirstSession {
		t.Fatalf("expected first_session unlock, got %+v", out.NewlyUnlocked)
	}
}

func TestRecordRejectsNegativeMinutes(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeClock{values: []time.Time{time.Now()}})
	_, err := uc.RecordSessionCompletion(context.Background(), dto.RecordInput{DurationMinutes: -1})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAllThemesNeedsEveryCatalogTheme(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}}
	uc := newInteractor(clk)
	ctx := context.Background()
	for _, id := range []string{"ocean", "forest", "rain", "night"} {
		if _, err := uc.RecordSessionCompletion(ctx, dto.RecordInput{DurationMinutes: 5, ThemeID: id}); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	snap, _ := uc.Snapshot(ctx)
	if unlocked(snap, domain.AchievementAllThemes) {
		t.Fatalf("all_themes unlocked before mountain")
	}
	out, err := uc.RecordSessionCompletion(ctx, dto.RecordInput{DurationMinutes: 5, ThemeID: "mountain"})
	if err != nil {
		t.Fatalf("record mountain: %v", err)
	}
	if !unlocked(out.Snapshot, domain.AchievementAllThemes) {
		t.Fatalf("expected all_themes after the full catalog")
	}
}

func TestCalendarMarksCompletedDays(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}}
	uc := newInteractor(clk)
	ctx := context.Background()
	if _, err := uc.RecordSessionCompletion(ctx, dto.RecordInput{DurationMinutes: 5}); err != nil {
		t.Fatalf("record: %v", err)
	}

	cal, err := uc.Calendar(ctx, dto.CalendarInput{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.Year != 2026 || cal.Month != time.October || len(cal.Cells) != domain.GridCells {
		t.Fatalf("unexpected calendar header %d-%d with %d cells", cal.Year, cal.Month, len(cal.Cells))
	}
	// October 2026 starts on a Thursday.
	for i := 0; i < 4; i++ {
		if cal.Cells[i] != nil {
			t.Fatalf("expected padding at %d", i)
		}
	}
	prev := 0
	for _, c := range cal.Cells {
		if c == nil {
			continue
		}
		if c.Day != prev+1 {
			t.Fatalf("expected day %d, got %d", prev+1, c.Day)
		}
		prev = c.Day
		if c.Completed != (c.Date == "2026-10-14") {
			t.Fatalf("unexpected completion flag on %s", c.Date)
		}
	}
	if prev != 31 {
		t.Fatalf("expected 31 days, got %d", prev)
	}

	if _, err := uc.Calendar(ctx, dto.CalendarInput{Year: 2026, Month: 13}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month error, got %v", err)
	}
}

func TestSubscribeReceivesDTOs(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}}
	uc := newInteractor(clk)
	var got []dto.SnapshotOutput
	stop := uc.Subscribe(func(s dto.SnapshotOutput) { got = append(got, s) })
	defer stop()
	if _, err := uc.RecordSessionCompletion(context.Background(), dto.RecordInput{DurationMinutes: 7}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(got) != 1 || got[0].TotalMinutes != 7 {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func unlocked(s dto.SnapshotOutput, id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return a.Unlocked
		}
	}
	return false
}
