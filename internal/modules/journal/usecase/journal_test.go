package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	journalout "serene/internal/modules/journal/adapter/out"
	"serene/internal/modules/journal/dto"
	"serene/internal/modules/journal/service"
	"serene/internal/modules/journal/usecase"
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

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return []string{"", "e1", "e2", "e3"}[s.n]
}

func TestAddEntryValidatesAndOrders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}}
	svc := service.NewJournalService(journalout.NewMemoryEntryStore(), nil)
	uc := usecase.NewInteractor(svc, themeusecase.NewInteractor(), clk, &seqID{})

	first, err := uc.AddEntry(ctx, dto.AddEntryInput{Mood: "calm", Notes: "  slow breaths  ", ThemeID: "ocean", DurationSeconds: 600})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if first.ID != "e1" || first.Notes != "slow breaths" || first.MoodSymbol == "" {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if _, err := uc.AddEntry(ctx, dto.AddEntryInput{Mood: "grateful", Notes: "sunlight", ThemeID: "forest", DurationSeconds: 300}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	entries, err := uc.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e2" || entries[1].ID != "e1" {
		t.Fatalf("expected [e2, e1], got %+v", entries)
	}
	if !entries[0].Date.After(entries[1].Date) {
		t.Fatalf("expected the clock to stamp entries")
	}
}

func TestAddEntryRejectsBadInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)}}
	uc := usecase.NewInteractor(service.NewJournalService(nil, nil), themeusecase.NewInteractor(), clk, &seqID{})

	cases := map[string]dto.AddEntryInput{
		"unknown mood":      {Mood: "angry", Notes: "x", ThemeID: "ocean"},
		"empty notes":       {Mood: "calm", Notes: "   ", ThemeID: "ocean"},
		"unknown theme":     {Mood: "calm", Notes: "x", ThemeID: "desert"},
		"negative duration": {Mood: "calm", Notes: "x", ThemeID: "ocean", DurationSeconds: -1},
	}
	for name, input := range cases {
		if _, err := uc.AddEntry(ctx, input); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
	}
	if entries, _ := uc.Entries(ctx); len(entries) != 0 {
		t.Fatalf("rejected input must not be saved")
	}
}
