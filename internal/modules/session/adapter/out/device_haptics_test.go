package out_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	devicedto "serene/internal/modules/device/dto"
	sessionout "serene/internal/modules/session/adapter/out"
	apperrors "serene/internal/platform/errors"
)

type fakeDevice struct {
	mu     sync.Mutex
	inputs []devicedto.PulseInput
	err    error
}

func (f *fakeDevice) List(context.Context) ([]devicedto.DriverInfo, error)     { return nil, nil }
func (f *fakeDevice) Doctor(context.Context) ([]devicedto.DoctorResult, error) { return nil, nil }
func (f *fakeDevice) Close() error                                             { return nil }
func (f *fakeDevice) Pulse(_ context.Context, in devicedto.PulseInput) (devicedto.PulseOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return devicedto.PulseOutput{}, f.err
	}
	return devicedto.PulseOutput{Driver: in.Driver, Accepted: true}, nil
}

func TestDeviceHapticsForwardsPulses(t *testing.T) {
	t.Parallel()
	device := &fakeDevice{}
	h := sessionout.NewDeviceHaptics(device, "haptics-echo", hclog.NewNullLogger())
	if err := h.FireTransientPulse(context.Background(), 0.6, 0.4); err != nil {
		t.Fatalf("fire pulse: %v", err)
	}
	h.Wait()
	if len(device.inputs) != 1 || device.inputs[0].Driver != "haptics-echo" || device.inputs[0].Intensity != 0.6 {
		t.Fatalf("unexpected forwarded pulses %+v", device.inputs)
	}
}

func TestDeviceHapticsUnsupportedWithoutDriver(t *testing.T) {
	t.Parallel()
	h := sessionout.NewDeviceHaptics(&fakeDevice{}, "", nil)
	if err := h.FireTransientPulse(context.Background(), 1, 1); !errors.Is(err, apperrors.ErrHardwareUnsupported) {
		t.Fatalf("expected hardware unsupported, got %v", err)
	}
}

func TestDeviceHapticsLatchesUnsupported(t *testing.T) {
	t.Parallel()
	device := &fakeDevice{err: apperrors.ErrHardwareUnsupported}
	h := sessionout.NewDeviceHaptics(device, "haptics-echo", nil)
	if err := h.FireTransientPulse(context.Background(), 1, 1); err != nil {
		t.Fatalf("first pulse is dispatched asynchronously: %v", err)
	}
	h.Wait()
	if err := h.FireTransientPulse(context.Background(), 1, 1); !errors.Is(err, apperrors.ErrHardwareUnsupported) {
		t.Fatalf("expected latched unsupported error, got %v", err)
	}
}
