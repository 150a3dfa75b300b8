package in

import (
	"context"

	"serene/internal/modules/progress/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	RecordSessionCompletion(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error)
	// Subscribe registers fn for every published snapshot. The returned func
	// removes the registration.
	Subscribe(fn func(dto.SnapshotOutput)) func()
}
