package domain

import (
	"math"
	"time"

	themedomain "serene/internal/modules/theme/domain"
)

// DurationPresets are the session lengths a user can pick.
var DurationPresets = []time.Duration{
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	20 * time.Minute,
	30 * time.Minute,
}

const (
	DefaultDuration  = 10 * time.Minute
	DefaultIntensity = 0.5
	TickInterval     = time.Second
)

// Pulse parameters for the two haptic events.
const (
	TogglePulseIntensity     = 0.6
	TogglePulseSharpness     = 0.4
	CompletionPulseIntensity = 1.0
	CompletionPulseSharpness = 0.8
)

func IsPreset(d time.Duration) bool {
	for _, p := range DurationPresets {
		if p == d {
			return true
		}
	}
	return false
}

// ClampIntensity bounds v to [0, 1]. NaN maps to 0.
func ClampIntensity(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Playback is what the controller owns: audio on or off, volume and theme.
type Playback struct {
	Playing   bool
	Intensity float64
	Theme     themedomain.Theme
}

// Timer is the countdown's view of the running session. Active stays true
// while a started session is paused; Running is true only while ticks count.
type Timer struct {
	Remaining  time.Duration
	Active     bool
	Running    bool
	Generation uint64
}

// State is the complete session state shown to the user.
type State struct {
	Playback
	Timer
	Duration time.Duration
}
