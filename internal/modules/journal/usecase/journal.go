package usecase

import (
	"context"
	"fmt"
	"strings"

	"serene/internal/modules/journal/domain"
	"serene/internal/modules/journal/dto"
	journalin "serene/internal/modules/journal/port/in"
	"serene/internal/modules/journal/service"
	themein "serene/internal/modules/theme/port/in"
	"serene/internal/platform/clock"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/id"
)

type Interactor struct {
	svc    *service.JournalService
	themes themein.Usecase
	clock  clock.Clock
	idGen  id.Generator
}

func NewInteractor(svc *service.JournalService, themes themein.Usecase, clk clock.Clock, idGen id.Generator) journalin.Usecase {
	return &Interactor{svc: svc, themes: themes, clock: clk, idGen: idGen}
}

func (i *Interactor) AddEntry(ctx context.Context, input dto.AddEntryInput) (dto.EntryOutput, error) {
	mood, err := domain.ParseMood(input.Mood)
	if err != nil {
		return dto.EntryOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	notes := strings.TrimSpace(input.Notes)
	if notes == "" {
		return dto.EntryOutput{}, fmt.Errorf("%w: notes are required", apperrors.ErrInvalidInput)
	}
	if input.DurationSeconds < 0 {
		return dto.EntryOutput{}, fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	themeID := strings.TrimSpace(input.ThemeID)
	if i.themes != nil {
		if _, err := i.themes.Get(ctx, themeID); err != nil {
			return dto.EntryOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}

	entry := domain.Entry{
		ID:              i.idGen.New(),
		Date:            i.clock.Now(),
		Mood:            mood,
		Notes:           notes,
		ThemeID:         themeID,
		DurationSeconds: input.DurationSeconds,
	}
	i.svc.AddEntry(ctx, entry)
	return toOutput(entry), nil
}

func (i *Interactor) Entries(_ context.Context) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.Entries()), nil
}

func (i *Interactor) Subscribe(fn func([]dto.EntryOutput)) func() {
	return i.svc.Subscribe(func(entries []domain.Entry) {
		fn(toOutputs(entries))
	})
}

func toOutputs(entries []domain.Entry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toOutput(e))
	}
	return out
}

func toOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:              e.ID,
		Date:            e.Date,
		Mood:            string(e.Mood),
		MoodSymbol:      e.Mood.Symbol(),
		Notes:           e.Notes,
		ThemeID:         e.ThemeID,
		DurationSeconds: e.DurationSeconds,
	}
}
