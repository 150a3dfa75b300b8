package dto

import (
	"time"

	progressdto "serene/internal/modules/progress/dto"
	themedto "serene/internal/modules/theme/dto"
)

type StateOutput struct {
	Playing       bool
	Intensity     float64
	Theme         themedto.ThemeOutput
	Remaining     time.Duration
	SessionActive bool
	Running       bool
	// Duration is the length of the next session, Length the one in progress.
	Duration   time.Duration
	Length     time.Duration
	Generation uint64
}

type TickOutput struct {
	State StateOutput
	// Accepted is false for stale or paused ticks, which change nothing.
	Accepted  bool
	Completed bool
	Recorded  *progressdto.RecordOutput
}
