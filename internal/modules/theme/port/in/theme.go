package in

import (
	"context"

	"serene/internal/modules/theme/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ThemeOutput, error)
	Get(ctx context.Context, id string) (dto.ThemeOutput, error)
}
