package out

import "context"

// Track is one loaded ambient sound.
type Track interface {
	Play(looping bool) error
	Pause()
	// SetVolume takes a linear level in [0, 1].
	SetVolume(level float64)
	Close() error
}

// AudioEngine loads sound assets by file name. A missing file yields
// apperrors.ErrAssetMissing.
type AudioEngine interface {
	Load(ctx context.Context, assetID string) (Track, error)
}

// Haptics fires a single transient pulse. Implementations must not block on
// the device; apperrors.ErrHardwareUnsupported means no device is available.
type Haptics interface {
	FireTransientPulse(ctx context.Context, intensity, sharpness float64) error
}
