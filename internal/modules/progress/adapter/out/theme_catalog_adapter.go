package out

import (
	"context"

	progressout "serene/internal/modules/progress/port/out"
	themein "serene/internal/modules/theme/port/in"
)

type ThemeCatalogAdapter struct {
	themes themein.Usecase
}

func NewThemeCatalogAdapter(themes themein.Usecase) progressout.ThemeCatalog {
	return &ThemeCatalogAdapter{themes: themes}
}

func (a *ThemeCatalogAdapter) ThemeIDs(ctx context.Context) ([]string, error) {
	themes, err := a.themes.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(themes))
	for _, t := range themes {
		ids = append(ids, t.ID)
	}
	return ids, nil
}
