package out

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	devicedto "serene/internal/modules/device/dto"
	devicein "serene/internal/modules/device/port/in"
	sessionout "serene/internal/modules/session/port/out"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

const pulseTimeout = 2 * time.Second

// DeviceHaptics forwards pulses to a haptics driver without waiting for it.
// Once the driver reports unsupported hardware, later pulses fail fast with
// apperrors.ErrHardwareUnsupported.
type DeviceHaptics struct {
	device devicein.Usecase
	driver string
	logger hclog.Logger

	wg          sync.WaitGroup
	unsupported atomic.Bool
}

func NewDeviceHaptics(device devicein.Usecase, driver string, logger hclog.Logger) *DeviceHaptics {
	h := &DeviceHaptics{device: device, driver: driver, logger: logging.OrNull(logger).Named("haptics")}
	if device == nil || driver == "" {
		h.unsupported.Store(true)
	}
	return h
}

var _ sessionout.Haptics = (*DeviceHaptics)(nil)

func (h *DeviceHaptics) FireTransientPulse(ctx context.Context, intensity, sharpness float64) error {
	if h.unsupported.Load() {
		return apperrors.ErrHardwareUnsupported
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		pulseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pulseTimeout)
		defer cancel()
		out, err := h.device.Pulse(pulseCtx, devicedto.PulseInput{Driver: h.driver, Intensity: intensity, Sharpness: sharpness})
		switch {
		case errors.Is(err, apperrors.ErrHardwareUnsupported):
			h.unsupported.Store(true)
			h.logger.Info("haptics unsupported", "driver", h.driver, "error", err)
		case err != nil:
			h.logger.Warn("pulse failed", "driver", h.driver, "error", err)
		case !out.Accepted:
			h.logger.Debug("pulse skipped", "driver", h.driver, "reason", out.Message)
		}
	}()
	return nil
}

// Wait blocks until every dispatched pulse has finished.
func (h *DeviceHaptics) Wait() {
	h.wg.Wait()
}
