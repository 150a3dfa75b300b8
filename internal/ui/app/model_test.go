package app

import (
	"context"
	"testing"
	"time"

	journaldto "serene/internal/modules/journal/dto"
	progressdto "serene/internal/modules/progress/dto"
	sessiondto "serene/internal/modules/session/dto"
	themedto "serene/internal/modules/theme/dto"
	"serene/internal/ui/components"
	meditateview "serene/internal/ui/views/meditate"
)

type fakeSession struct {
	duration time.Duration
	ticks    []uint64
}

func (f *fakeSession) State(context.Context) (sessiondto.StateOutput, error) {
	return sessiondto.StateOutput{Duration: f.duration}, nil
}
func (f *fakeSession) SelectTheme(context.Context, string) (sessiondto.StateOutput, error) {
	return sessiondto.StateOutput{}, nil
}
func (f *fakeSession) SelectDuration(_ context.Context, d time.Duration) (sessiondto.StateOutput, error) {
	f.duration = d
	return sessiondto.StateOutput{Duration: d}, nil
}
func (f *fakeSession) UpdateIntensity(context.Context, float64) (sessiondto.StateOutput, error) {
	return sessiondto.StateOutput{}, nil
}
func (f *fakeSession) TogglePlayback(context.Context) (sessiondto.StateOutput, error) {
	return sessiondto.StateOutput{Playing: true, Running: true, SessionActive: true, Generation: 1}, nil
}
func (f *fakeSession) Tick(_ context.Context, gen uint64) (sessiondto.TickOutput, error) {
	f.ticks = append(f.ticks, gen)
	return sessiondto.TickOutput{Accepted: true}, nil
}
func (f *fakeSession) EndSession(context.Context) (sessiondto.StateOutput, error) {
	return sessiondto.StateOutput{}, nil
}

type fakeThemes struct{}

func (fakeThemes) List(context.Context) ([]themedto.ThemeOutput, error) {
	return []themedto.ThemeOutput{{ID: "ocean"}, {ID: "rain"}}, nil
}

type fakeProgress struct{}

func (fakeProgress) Snapshot(context.Context) (progressdto.SnapshotOutput, error) {
	return progressdto.SnapshotOutput{}, nil
}
func (fakeProgress) Calendar(context.Context, string) (progressdto.CalendarOutput, error) {
	return progressdto.CalendarOutput{}, nil
}

type fakeJournal struct{}

func (fakeJournal) List(context.Context) ([]journaldto.EntryOutput, error) { return nil, nil }
func (fakeJournal) Add(context.Context, string, string, int, string) (journaldto.EntryOutput, error) {
	return journaldto.EntryOutput{}, nil
}

func newTestModel(session *fakeSession) Model {
	return NewModel(session, fakeThemes{}, fakeProgress{}, fakeJournal{})
}

func TestPaletteDurationCommand(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := newTestModel(session)

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "duration 15"})
	if cmd == nil {
		t.Fatalf("expected a session command")
	}
	msg := cmd()
	if _, ok := msg.(meditateview.StateMsg); !ok {
		t.Fatalf("expected StateMsg, got %T", msg)
	}
	if session.duration != 15*time.Minute {
		t.Fatalf("expected 15m duration, got %s", session.duration)
	}
	if next.(Model).activeTab != tabMeditate {
		t.Fatalf("duration command should show the Meditate tab")
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	t.Parallel()
	m := newTestModel(&fakeSession{})
	next, _ := m.Update(components.PaletteSubmitMsg{Input: "levitate"})
	if got := next.(Model).status; got != "unknown command: levitate" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestTicksReachMeditateFromOtherTabs(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := newTestModel(session)
	m.activeTab = tabJournal
	m.palette.Open()

	_, cmd := m.Update(meditateview.TickMsg{Generation: 4})
	if cmd == nil {
		t.Fatalf("expected the tick to be forwarded")
	}
	if _, ok := cmd().(meditateview.TickedMsg); !ok {
		t.Fatalf("expected TickedMsg")
	}
	if len(session.ticks) != 1 || session.ticks[0] != 4 {
		t.Fatalf("expected tick for generation 4, got %v", session.ticks)
	}
}

func TestHintsIncludeCatalogThemes(t *testing.T) {
	t.Parallel()
	hints := paletteHints(fakeThemes{})
	if hints[0] != "theme ocean" || hints[1] != "theme rain" {
		t.Fatalf("unexpected hints %v", hints[:2])
	}
}
