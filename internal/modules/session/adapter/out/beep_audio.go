package out

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	hclog "github.com/hashicorp/go-hclog"

	sessionout "serene/internal/modules/session/port/out"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

// speakerRate is the output rate; decoded streams at other rates are
// resampled to it.
const speakerRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepEngine decodes wav and mp3 assets from a sounds directory and plays
// them through the shared speaker.
type BeepEngine struct {
	soundsPath string
	logger     hclog.Logger
}

func NewBeepEngine(soundsPath string, logger hclog.Logger) *BeepEngine {
	return &BeepEngine{soundsPath: soundsPath, logger: logging.OrNull(logger).Named("audio")}
}

var _ sessionout.AudioEngine = (*BeepEngine)(nil)

func (e *BeepEngine) Load(_ context.Context, assetID string) (sessionout.Track, error) {
	path := filepath.Join(e.soundsPath, filepath.Base(assetID))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAssetMissing, assetID)
		}
		return nil, fmt.Errorf("open sound: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		err = fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", assetID, err)
	}
	if err := initSpeaker(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	e.logger.Debug("sound loaded", "asset", assetID, "rate", int(format.SampleRate))
	return &beepTrack{source: stream, rate: format.SampleRate}, nil
}

// beepTrack chains source -> loop -> resample -> pause control -> volume.
// The chain is built on the first Play and then only toggled.
type beepTrack struct {
	source beep.StreamSeekCloser
	rate   beep.SampleRate

	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64
	closed bool
}

func (t *beepTrack) Play(looping bool) error {
	if t.closed {
		return fmt.Errorf("play closed track")
	}
	if t.ctrl == nil {
		var s beep.Streamer = t.source
		if looping {
			s = beep.Loop(-1, t.source)
		}
		if t.rate != speakerRate {
			s = beep.Resample(4, t.rate, speakerRate, s)
		}
		t.ctrl = &beep.Ctrl{Streamer: s}
		t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
		applyLevel(t.volume, t.level)
		speaker.Play(t.volume)
		return nil
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (t *beepTrack) Pause() {
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *beepTrack) SetVolume(level float64) {
	t.level = level
	if t.volume == nil {
		return
	}
	speaker.Lock()
	applyLevel(t.volume, level)
	speaker.Unlock()
}

func (t *beepTrack) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	return t.source.Close()
}

// applyLevel maps a linear level to effects.Volume's base-2 exponent.
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(math.Min(level, 1))
}
