package in

import (
	"context"

	"serene/internal/modules/theme/dto"
	themein "serene/internal/modules/theme/port/in"
)

type CLIHandler struct {
	usecase themein.Usecase
}

func NewCLIHandler(usecase themein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ThemeOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ThemeOutput, error) {
	return h.usecase.Get(ctx, id)
}
