package in

import (
	"context"
	"time"

	sessiondto "serene/internal/modules/session/dto"
	sessionin "serene/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Meditate configures a session, starts it and blocks until it completes or
// ctx is cancelled. ticks drives the countdown.
func (h CLIHandler) Meditate(ctx context.Context, themeID string, duration time.Duration, intensity float64, ticks <-chan time.Time) (sessiondto.TickOutput, error) {
	if themeID != "" {
		if _, err := h.usecase.SelectTheme(ctx, themeID); err != nil {
			return sessiondto.TickOutput{}, err
		}
	}
	if duration != 0 {
		if _, err := h.usecase.SelectDuration(ctx, duration); err != nil {
			return sessiondto.TickOutput{}, err
		}
	}
	if _, err := h.usecase.UpdateIntensity(ctx, intensity); err != nil {
		return sessiondto.TickOutput{}, err
	}
	if _, err := h.usecase.TogglePlayback(ctx); err != nil {
		return sessiondto.TickOutput{}, err
	}
	return h.usecase.Run(ctx, ticks)
}

func (h CLIHandler) Subscribe(fn func(sessiondto.StateOutput)) func() {
	return h.usecase.Subscribe(fn)
}
