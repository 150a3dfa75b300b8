package in

import (
	"context"

	"serene/internal/modules/journal/dto"
)

type Usecase interface {
	AddEntry(ctx context.Context, input dto.AddEntryInput) (dto.EntryOutput, error)
	// Entries lists saved entries, newest first.
	Entries(ctx context.Context) ([]dto.EntryOutput, error)
	Subscribe(fn func([]dto.EntryOutput)) func()
}
