package in

import (
	"context"

	"serene/internal/modules/journal/dto"
	journalin "serene/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, mood, themeID string, durationSeconds int, notes string) (dto.EntryOutput, error) {
	return h.usecase.AddEntry(ctx, dto.AddEntryInput{Mood: mood, ThemeID: themeID, DurationSeconds: durationSeconds, Notes: notes})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.Entries(ctx)
}
