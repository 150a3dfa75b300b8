package out

import (
	"context"

	"serene/internal/modules/journal/domain"
)

type EntryStore interface {
	// Append persists entry and returns where it was written.
	Append(ctx context.Context, entry domain.Entry) (string, error)
	List(ctx context.Context) ([]domain.Entry, error)
}
