package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	progressdto "serene/internal/modules/progress/dto"
	progressin "serene/internal/modules/progress/port/in"
	"serene/internal/modules/session/domain"
	sessiondto "serene/internal/modules/session/dto"
	sessionin "serene/internal/modules/session/port/in"
	"serene/internal/modules/session/service"
	themedomain "serene/internal/modules/theme/domain"
	themedto "serene/internal/modules/theme/dto"
	"serene/internal/platform/clock"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

// Interactor composes the controller, the countdown and progress recording.
// A countdown that reaches zero stops playback, fires the completion pulse
// and records the session; ending a session early records nothing.
type Interactor struct {
	controller *service.Controller
	countdown  *service.Countdown
	progress   progressin.Usecase
	clock      clock.Clock
	logger     hclog.Logger

	mu        sync.Mutex
	duration  time.Duration
	length    time.Duration
	listeners map[int]func(sessiondto.StateOutput)
	nextID    int
}

func NewInteractor(controller *service.Controller, countdown *service.Countdown, progress progressin.Usecase, clk clock.Clock, duration time.Duration, logger hclog.Logger) sessionin.Usecase {
	if !domain.IsPreset(duration) {
		duration = domain.DefaultDuration
	}
	return &Interactor{
		controller: controller,
		countdown:  countdown,
		progress:   progress,
		clock:      clk,
		logger:     logging.OrNull(logger).Named("session"),
		duration:   duration,
		listeners:  map[int]func(sessiondto.StateOutput){},
	}
}

func (i *Interactor) State(_ context.Context) (sessiondto.StateOutput, error) {
	return i.state(), nil
}

func (i *Interactor) SelectTheme(ctx context.Context, themeID string) (sessiondto.StateOutput, error) {
	theme, ok := themedomain.Find(strings.TrimSpace(themeID))
	if !ok {
		return i.state(), fmt.Errorf("%w: theme %q", apperrors.ErrNotFound, themeID)
	}
	i.controller.SelectTheme(ctx, theme)
	return i.publish(), nil
}

// SelectDuration sets the length of the next session; a running countdown
// keeps its remaining time.
func (i *Interactor) SelectDuration(_ context.Context, d time.Duration) (sessiondto.StateOutput, error) {
	if !domain.IsPreset(d) {
		return i.state(), fmt.Errorf("%w: duration %s is not a preset", apperrors.ErrInvalidInput, d)
	}
	i.mu.Lock()
	i.duration = d
	i.mu.Unlock()
	return i.publish(), nil
}

func (i *Interactor) UpdateIntensity(_ context.Context, level float64) (sessiondto.StateOutput, error) {
	if math.IsNaN(level) || level < 0 || level > 1 {
		return i.state(), fmt.Errorf("%w: intensity %v outside [0,1]", apperrors.ErrInvalidInput, level)
	}
	i.controller.UpdateIntensity(level)
	return i.publish(), nil
}

// TogglePlayback starts a countdown when none is active, resumes a paused
// one, or pauses the running one.
func (i *Interactor) TogglePlayback(ctx context.Context) (sessiondto.StateOutput, error) {
	if i.controller.TogglePlayback(ctx) {
		if _, resumed := i.countdown.Resume(); !resumed && !i.countdown.State().Active {
			length := i.nextDuration()
			i.mu.Lock()
			i.length = length
			i.mu.Unlock()
			i.countdown.Start(length)
		}
	} else {
		i.countdown.Pause()
	}
	return i.publish(), nil
}

func (i *Interactor) Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error) {
	_, finished, ok := i.countdown.Tick(generation)
	if !ok {
		return sessiondto.TickOutput{State: i.state()}, nil
	}
	if !finished {
		return sessiondto.TickOutput{State: i.publish(), Accepted: true}, nil
	}

	i.controller.Stop()
	i.controller.Pulse(ctx, domain.CompletionPulseIntensity, domain.CompletionPulseSharpness)
	recorded := i.record(ctx)
	return sessiondto.TickOutput{State: i.publish(), Accepted: true, Completed: true, Recorded: recorded}, nil
}

func (i *Interactor) record(ctx context.Context) *progressdto.RecordOutput {
	if i.progress == nil {
		return nil
	}
	playback := i.controller.State()
	i.mu.Lock()
	length := i.length
	i.mu.Unlock()
	out, err := i.progress.RecordSessionCompletion(ctx, progressdto.RecordInput{
		DurationMinutes: int(length / time.Minute),
		Day:             i.clock.Now(),
		ThemeID:         playback.Theme.ID,
	})
	if err != nil {
		i.logger.Error("record completed session", "error", err)
		return nil
	}
	return &out
}

func (i *Interactor) EndSession(_ context.Context) (sessiondto.StateOutput, error) {
	i.countdown.Cancel()
	i.controller.Stop()
	return i.publish(), nil
}

func (i *Interactor) Run(ctx context.Context, ticks <-chan time.Time) (sessiondto.TickOutput, error) {
	if !i.countdown.State().Active {
		return sessiondto.TickOutput{State: i.state()}, fmt.Errorf("%w: no active session", apperrors.ErrInvalidInput)
	}
	for {
		select {
		case <-ctx.Done():
			state, _ := i.EndSession(context.Background())
			return sessiondto.TickOutput{State: state}, ctx.Err()
		case _, open := <-ticks:
			if !open {
				return sessiondto.TickOutput{State: i.state()}, nil
			}
			out, err := i.Tick(ctx, i.countdown.State().Generation)
			if err != nil || out.Completed {
				return out, err
			}
		}
	}
}

func (i *Interactor) Subscribe(fn func(sessiondto.StateOutput)) func() {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := i.nextID
	i.nextID++
	i.listeners[id] = fn
	return func() {
		i.mu.Lock()
		delete(i.listeners, id)
		i.mu.Unlock()
	}
}

func (i *Interactor) Close() error {
	i.countdown.Cancel()
	return i.controller.Close()
}

func (i *Interactor) nextDuration() time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.duration
}

func (i *Interactor) publish() sessiondto.StateOutput {
	state := i.state()
	i.mu.Lock()
	listeners := make([]func(sessiondto.StateOutput), 0, len(i.listeners))
	for id := 0; id < i.nextID; id++ {
		if fn, ok := i.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	i.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
	return state
}

func (i *Interactor) state() sessiondto.StateOutput {
	playback := i.controller.State()
	timer := i.countdown.State()
	i.mu.Lock()
	length := i.length
	i.mu.Unlock()
	return sessiondto.StateOutput{
		Playing:       playback.Playing,
		Intensity:     playback.Intensity,
		Theme:         toThemeOutput(playback.Theme),
		Remaining:     timer.Remaining,
		SessionActive: timer.Active,
		Running:       timer.Running,
		Duration:      i.nextDuration(),
		Length:        length,
		Generation:    timer.Generation,
	}
}

func toThemeOutput(t themedomain.Theme) themedto.ThemeOutput {
	return themedto.ThemeOutput{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		SoundFileName:  t.SoundFileName,
		Benefits:       append([]string{}, t.Benefits...),
		Icon:           t.Icon,
	}
}
