package in

import (
	"context"
	"fmt"
	"time"

	"serene/internal/modules/progress/dto"
	progressin "serene/internal/modules/progress/port/in"
	apperrors "serene/internal/platform/errors"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}

// Calendar accepts "" for the current month or a YYYY-MM month.
func (h CLIHandler) Calendar(ctx context.Context, month string) (dto.CalendarOutput, error) {
	input := dto.CalendarInput{}
	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return dto.CalendarOutput{}, fmt.Errorf("%w: month %q must be YYYY-MM", apperrors.ErrInvalidInput, month)
		}
		input.Year, input.Month = t.Year(), t.Month()
	}
	return h.usecase.Calendar(ctx, input)
}
