package in

import (
	"context"
	"time"

	sessiondto "serene/internal/modules/session/dto"
	sessionin "serene/internal/modules/session/port/in"
)

// TUIHandler exposes the interactive session commands to the terminal UI.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) State(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h TUIHandler) SelectTheme(ctx context.Context, themeID string) (sessiondto.StateOutput, error) {
	return h.usecase.SelectTheme(ctx, themeID)
}

func (h TUIHandler) SelectDuration(ctx context.Context, d time.Duration) (sessiondto.StateOutput, error) {
	return h.usecase.SelectDuration(ctx, d)
}

func (h TUIHandler) UpdateIntensity(ctx context.Context, level float64) (sessiondto.StateOutput, error) {
	return h.usecase.UpdateIntensity(ctx, level)
}

func (h TUIHandler) TogglePlayback(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.TogglePlayback(ctx)
}

func (h TUIHandler) Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx, generation)
}

func (h TUIHandler) EndSession(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.EndSession(ctx)
}
