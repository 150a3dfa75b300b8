package service

import (
	"context"
	"errors"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/session/domain"
	sessionout "serene/internal/modules/session/port/out"
	themedomain "serene/internal/modules/theme/domain"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

// Controller owns playback: whether audio runs, at what intensity and for
// which theme. It never returns errors; audio and haptics failures are logged
// and the state change still happens.
type Controller struct {
	audio   sessionout.AudioEngine
	haptics sessionout.Haptics
	logger  hclog.Logger

	mu        sync.RWMutex
	state     domain.Playback
	track     sessionout.Track
	listeners map[int]func(domain.Playback)
	nextID    int
}

func NewController(audio sessionout.AudioEngine, haptics sessionout.Haptics, theme themedomain.Theme, intensity float64, logger hclog.Logger) *Controller {
	if _, ok := themedomain.Find(theme.ID); !ok {
		theme = themedomain.Default()
	}
	return &Controller{
		audio:     audio,
		haptics:   haptics,
		logger:    logging.OrNull(logger).Named("controller"),
		state:     domain.Playback{Intensity: domain.ClampIntensity(intensity), Theme: theme},
		listeners: map[int]func(domain.Playback){},
	}
}

func (c *Controller) State() domain.Playback {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SelectTheme switches the current theme. While playing, the old track is
// released and the new theme's sound starts at once.
func (c *Controller) SelectTheme(ctx context.Context, theme themedomain.Theme) {
	if _, ok := themedomain.Find(theme.ID); !ok {
		c.logger.Warn("ignoring theme outside the catalog", "theme", theme.ID)
		return
	}
	c.mu.Lock()
	if c.state.Theme.ID == theme.ID {
		c.mu.Unlock()
		return
	}
	c.state.Theme = theme
	c.releaseLocked()
	if c.state.Playing {
		c.startLocked(ctx)
	}
	c.unlockAndNotify()
}

// TogglePlayback flips between playing and paused and reports the new value.
func (c *Controller) TogglePlayback(ctx context.Context) bool {
	c.mu.Lock()
	c.state.Playing = !c.state.Playing
	playing := c.state.Playing
	if playing {
		c.startLocked(ctx)
	} else if c.track != nil {
		c.track.Pause()
	}
	c.unlockAndNotify()

	c.Pulse(ctx, domain.TogglePulseIntensity, domain.TogglePulseSharpness)
	return playing
}

// UpdateIntensity changes the volume without interrupting playback.
func (c *Controller) UpdateIntensity(level float64) {
	level = domain.ClampIntensity(level)
	c.mu.Lock()
	if c.state.Intensity == level {
		c.mu.Unlock()
		return
	}
	c.state.Intensity = level
	if c.track != nil {
		c.track.SetVolume(level)
	}
	c.unlockAndNotify()
}

// Stop forces the paused state.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.state.Playing {
		c.mu.Unlock()
		return
	}
	c.state.Playing = false
	if c.track != nil {
		c.track.Pause()
	}
	c.unlockAndNotify()
}

// Pulse fires one haptic pulse. An unsupported device disables haptics for
// the rest of the process.
func (c *Controller) Pulse(ctx context.Context, intensity, sharpness float64) {
	c.mu.RLock()
	haptics := c.haptics
	c.mu.RUnlock()
	if haptics == nil {
		return
	}
	err := haptics.FireTransientPulse(ctx, intensity, sharpness)
	if err == nil {
		return
	}
	if errors.Is(err, apperrors.ErrHardwareUnsupported) {
		c.logger.Info("haptics unavailable, disabling", "error", err)
		c.mu.Lock()
		c.haptics = nil
		c.mu.Unlock()
		return
	}
	c.logger.Warn("haptic pulse failed", "error", err)
}

func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Playing = false
	c.releaseLocked()
	return nil
}

func (c *Controller) Subscribe(fn func(domain.Playback)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) startLocked(ctx context.Context) {
	if c.track == nil {
		if c.audio == nil {
			return
		}
		track, err := c.audio.Load(ctx, c.state.Theme.SoundFileName)
		if err != nil {
			c.logger.Warn("load theme sound, staying silent", "theme", c.state.Theme.ID, "error", err)
			return
		}
		c.track = track
	}
	c.track.SetVolume(c.state.Intensity)
	if err := c.track.Play(true); err != nil {
		c.logger.Warn("play theme sound", "theme", c.state.Theme.ID, "error", err)
	}
}

func (c *Controller) releaseLocked() {
	if c.track == nil {
		return
	}
	if err := c.track.Close(); err != nil {
		c.logger.Warn("release track", "error", err)
	}
	c.track = nil
}

// unlockAndNotify releases c.mu and then calls listeners with the state as
// it was at unlock time.
func (c *Controller) unlockAndNotify() {
	state := c.state
	listeners := make([]func(domain.Playback), 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if fn, ok := c.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}
