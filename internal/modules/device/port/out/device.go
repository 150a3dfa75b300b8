package out

import (
	"context"

	"serene/internal/modules/device/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs driver processes. Implementations may keep a driver running
// between calls until Close.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Pulse(ctx context.Context, manifest domain.Manifest, pulse domain.Pulse) (domain.PulseResult, error)
	Close() error
}
