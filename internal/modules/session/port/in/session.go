package in

import (
	"context"
	"time"

	"serene/internal/modules/session/dto"
)

type Usecase interface {
	State(ctx context.Context) (dto.StateOutput, error)
	SelectTheme(ctx context.Context, themeID string) (dto.StateOutput, error)
	SelectDuration(ctx context.Context, d time.Duration) (dto.StateOutput, error)
	UpdateIntensity(ctx context.Context, level float64) (dto.StateOutput, error)
	TogglePlayback(ctx context.Context) (dto.StateOutput, error)
	Tick(ctx context.Context, generation uint64) (dto.TickOutput, error)
	EndSession(ctx context.Context) (dto.StateOutput, error)
	// Run feeds ticks into the current session until it completes or ctx ends.
	Run(ctx context.Context, ticks <-chan time.Time) (dto.TickOutput, error)
	Subscribe(fn func(dto.StateOutput)) func()
	Close() error
}
