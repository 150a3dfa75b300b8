package service_test

import (
	"context"
	"sync"

	sessionout "serene/internal/modules/session/port/out"
	apperrors "serene/internal/platform/errors"
)

type recordingTrack struct {
	asset   string
	playing bool
	volume  float64
	plays   int
	closed  bool
}

func (t *recordingTrack) Play(bool) error {
	t.playing = true
	t.plays++
	return nil
}
func (t *recordingTrack) Pause()                  { t.playing = false }
func (t *recordingTrack) SetVolume(level float64) { t.volume = level }
func (t *recordingTrack) Close() error {
	t.closed = true
	t.playing = false
	return nil
}

type recordingAudio struct {
	missing map[string]bool
	tracks  []*recordingTrack
}

func (a *recordingAudio) Load(_ context.Context, assetID string) (sessionout.Track, error) {
	if a.missing[assetID] {
		return nil, apperrors.ErrAssetMissing
	}
	t := &recordingTrack{asset: assetID}
	a.tracks = append(a.tracks, t)
	return t, nil
}

func (a *recordingAudio) last() *recordingTrack {
	if len(a.tracks) == 0 {
		return nil
	}
	return a.tracks[len(a.tracks)-1]
}

type recordingHaptics struct {
	mu     sync.Mutex
	pulses [][2]float64
	err    error
}

func (h *recordingHaptics) FireTransientPulse(_ context.Context, intensity, sharpness float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = append(h.pulses, [2]float64{intensity, sharpness})
	return h.err
}

func (h *recordingHaptics) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pulses)
}
