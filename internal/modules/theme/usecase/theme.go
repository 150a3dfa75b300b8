package usecase

import (
	"context"
	"fmt"
	"strings"

	"serene/internal/modules/theme/domain"
	"serene/internal/modules/theme/dto"
	themein "serene/internal/modules/theme/port/in"
	apperrors "serene/internal/platform/errors"
)

type Interactor struct{}

func NewInteractor() themein.Usecase {
	return &Interactor{}
}

func (i *Interactor) List(_ context.Context) ([]dto.ThemeOutput, error) {
	themes := domain.Catalog()
	out := make([]dto.ThemeOutput, 0, len(themes))
	for _, t := range themes {
		out = append(out, toOutput(t))
	}
	return out, nil
}

func (i *Interactor) Get(_ context.Context, id string) (dto.ThemeOutput, error) {
	t, ok := domain.Find(strings.TrimSpace(id))
	if !ok {
		return dto.ThemeOutput{}, fmt.Errorf("%w: theme %q", apperrors.ErrNotFound, id)
	}
	return toOutput(t), nil
}

func toOutput(t domain.Theme) dto.ThemeOutput {
	return dto.ThemeOutput{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		SoundFileName:  t.SoundFileName,
		Benefits:       t.Benefits,
		Icon:           t.Icon,
	}
}
