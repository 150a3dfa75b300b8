package usecase

import (
	"context"
	"fmt"
	"time"

	"serene/internal/modules/progress/domain"
	"serene/internal/modules/progress/dto"
	progressin "serene/internal/modules/progress/port/in"
	"serene/internal/modules/progress/service"
	"serene/internal/platform/clock"
	apperrors "serene/internal/platform/errors"
)

type Interactor struct {
	svc   *service.ProgressService
	clock clock.Clock
}

func NewInteractor(svc *service.ProgressService, clk clock.Clock) progressin.Usecase {
	return &Interactor{svc: svc, clock: clk}
}

func (i *Interactor) Snapshot(_ context.Context) (dto.SnapshotOutput, error) {
	return toSnapshotOutput(i.svc.Snapshot()), nil
}

func (i *Interactor) RecordSessionCompletion(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	if input.DurationMinutes < 0 {
		return dto.RecordOutput{}, fmt.Errorf("%w: duration minutes must be non-negative", apperrors.ErrInvalidInput)
	}
	when := input.Day
	if when.IsZero() {
		when = i.clock.Now()
	}
	snapshot, unlocked := i.svc.Record(ctx, domain.Completion{
		DurationMinutes: input.DurationMinutes,
		Day:             domain.DayOf(when),
		ThemeID:         input.ThemeID,
	})
	return dto.RecordOutput{
		Snapshot:      toSnapshotOutput(snapshot),
		NewlyUnlocked: toAchievementOutputs(unlocked),
	}, nil
}

func (i *Interactor) Calendar(_ context.Context, input dto.CalendarInput) (dto.CalendarOutput, error) {
	year, month := input.Year, input.Month
	if year == 0 && month == 0 {
		now := i.clock.Now()
		year, month = now.Year(), now.Month()
	}
	if month < time.January || month > time.December || year <= 0 {
		return dto.CalendarOutput{}, fmt.Errorf("%w: month %d-%02d", apperrors.ErrInvalidInput, year, month)
	}
	heat := i.svc.Snapshot().Heatmap(year, month)
	cells := make([]*dto.CalendarCell, len(heat))
	for idx, c := range heat {
		if c == nil {
			continue
		}
		cells[idx] = &dto.CalendarCell{Date: c.Day.String(), Day: c.Day.Day, Completed: c.Completed}
	}
	return dto.CalendarOutput{Year: year, Month: month, Cells: cells}, nil
}

func (i *Interactor) Subscribe(fn func(dto.SnapshotOutput)) func() {
	return i.svc.Subscribe(func(s domain.Snapshot) {
		fn(toSnapshotOutput(s))
	})
}

func toSnapshotOutput(s domain.Snapshot) dto.SnapshotOutput {
	dates := make([]string, 0, len(s.CompletedDates))
	for _, d := range s.CompletedDates {
		dates = append(dates, d.String())
	}
	return dto.SnapshotOutput{
		WeeklyMinutes:  s.WeeklyMinutes,
		WeekStart:      s.WeekStart.String(),
		TotalMinutes:   s.TotalMinutes,
		StreakDays:     s.StreakDays,
		SessionCount:   s.SessionCount,
		CompletedDates: dates,
		ThemesTried:    append([]string{}, s.ThemesTried...),
		Achievements:   toAchievementOutputs(s.Achievements),
	}
}

func toAchievementOutputs(list []domain.Achievement) []dto.AchievementOutput {
	out := make([]dto.AchievementOutput, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AchievementOutput{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Unlocked,
			UnlockedAt:  a.UnlockedAt,
		})
	}
	return out
}
