package out

import (
	"context"

	sessionout "serene/internal/modules/session/port/out"
)

// NullEngine is used when audio is disabled; every track is silent.
type NullEngine struct{}

func (NullEngine) Load(context.Context, string) (sessionout.Track, error) {
	return nullTrack{}, nil
}

type nullTrack struct{}

func (nullTrack) Play(bool) error   { return nil }
func (nullTrack) Pause()            {}
func (nullTrack) SetVolume(float64) {}
func (nullTrack) Close() error      { return nil }
