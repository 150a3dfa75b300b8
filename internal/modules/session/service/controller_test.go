package service_test

import (
	"context"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/session/domain"
	"serene/internal/modules/session/service"
	themedomain "serene/internal/modules/theme/domain"
	apperrors "serene/internal/platform/errors"
)

func newController(audio *recordingAudio, haptics *recordingHaptics) *service.Controller {
	return service.NewController(audio, haptics, themedomain.Default(), 0.5, hclog.NewNullLogger())
}

func TestSelectThemeSetsCurrentForEveryCatalogTheme(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(&recordingAudio{}, &recordingHaptics{})
	for _, theme := range themedomain.Catalog() {
		c.SelectTheme(ctx, theme)
		if got := c.State().Theme.ID; got != theme.ID {
			t.Fatalf("expected theme %s, got %s", theme.ID, got)
		}
	}
}

func TestSelectThemeIgnoresUnknownTheme(t *testing.T) {
	t.Parallel()
	c := newController(&recordingAudio{}, &recordingHaptics{})
	c.SelectTheme(context.Background(), themedomain.Theme{ID: "desert"})
	if got := c.State().Theme.ID; got != themedomain.Default().ID {
		t.Fatalf("unknown theme must be ignored, got %s", got)
	}
}

func TestSelectThemeWhilePlayingSwapsTrack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	audio := &recordingAudio{}
	c := newController(audio, &recordingHaptics{})
	c.TogglePlayback(ctx)
	first := audio.last()

	forest, _ := themedomain.Find("forest")
	c.SelectTheme(ctx, forest)
	second := audio.last()
	if !first.closed {
		t.Fatalf("previous track must be released")
	}
	if second == first || second.asset != forest.SoundFileName || !second.playing {
		t.Fatalf("expected forest track playing, got %+v", second)
	}
	if !c.State().Playing {
		t.Fatalf("controller must keep playing after a theme switch")
	}
}

func TestToggleTwiceRestoresPlaying(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	audio := &recordingAudio{}
	haptics := &recordingHaptics{}
	c := newController(audio, haptics)
	before := c.State().Playing

	if !c.TogglePlayback(ctx) {
		t.Fatalf("first toggle should start playback")
	}
	track := audio.last()
	if !track.playing || track.volume != 0.5 {
		t.Fatalf("expected track playing at 0.5, got %+v", track)
	}
	c.TogglePlayback(ctx)
	if c.State().Playing != before || track.playing {
		t.Fatalf("second toggle must restore the paused state")
	}
	if len(audio.tracks) != 1 {
		t.Fatalf("track must be loaded lazily once, got %d loads", len(audio.tracks))
	}
	if haptics.count() != 2 {
		t.Fatalf("expected a pulse per toggle, got %d", haptics.count())
	}
}

func TestMissingAssetStaysSilent(t *testing.T) {
	t.Parallel()
	audio := &recordingAudio{missing: map[string]bool{themedomain.Default().SoundFileName: true}}
	c := newController(audio, &recordingHaptics{})
	if !c.TogglePlayback(context.Background()) {
		t.Fatalf("playback state must flip even without audio")
	}
	if len(audio.tracks) != 0 {
		t.Fatalf("no track expected for a missing asset")
	}
}

func TestUpdateIntensityIsIdempotentAndClamped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	audio := &recordingAudio{}
	c := newController(audio, &recordingHaptics{})
	c.TogglePlayback(ctx)

	var notified int
	stop := c.Subscribe(func(domain.Playback) { notified++ })
	defer stop()

	c.UpdateIntensity(0.8)
	first := c.State()
	c.UpdateIntensity(0.8)
	if second := c.State(); second.Intensity != first.Intensity || second.Playing != first.Playing || notified != 1 {
		t.Fatalf("second identical update must change nothing, notified=%d", notified)
	}
	if !audio.last().playing || audio.last().volume != 0.8 {
		t.Fatalf("volume change must not interrupt playback: %+v", audio.last())
	}
	c.UpdateIntensity(7)
	if c.State().Intensity != 1 {
		t.Fatalf("expected clamp to 1, got %v", c.State().Intensity)
	}
}

func TestUnsupportedHapticsAreDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	haptics := &recordingHaptics{err: apperrors.ErrHardwareUnsupported}
	c := newController(&recordingAudio{}, haptics)
	c.TogglePlayback(ctx)
	c.TogglePlayback(ctx)
	if haptics.count() != 1 {
		t.Fatalf("expected haptics disabled after first failure, got %d pulses", haptics.count())
	}
}

func TestStopAndClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	audio := &recordingAudio{}
	c := service.NewController(audio, nil, themedomain.Default(), 0.5, nil)
	c.TogglePlayback(ctx)
	c.Stop()
	if c.State().Playing || audio.last().playing {
		t.Fatalf("stop must pause")
	}
	if err := c.Close(); err != nil || !audio.last().closed {
		t.Fatalf("close must release the track, err=%v", err)
	}
}
