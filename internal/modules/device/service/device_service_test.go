package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	deviceout "serene/internal/modules/device/adapter/out"
	"serene/internal/modules/device/domain"
	"serene/internal/modules/device/dto"
	"serene/internal/modules/device/service"
	apperrors "serene/internal/platform/errors"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	supported bool
	metaCalls int
	pulses    []domain.Pulse
	pulseErr  error
	closed    bool
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	h.metaCalls++
	return domain.Metadata{Name: "echo", Version: "1", Device: "fake", Supported: h.supported}, nil
}
func (h *fakeHost) Pulse(_ context.Context, _ domain.Manifest, p domain.Pulse) (domain.PulseResult, error) {
	if h.pulseErr != nil {
		return domain.PulseResult{}, h.pulseErr
	}
	h.pulses = append(h.pulses, p)
	return domain.PulseResult{Accepted: true, Message: "ok"}, nil
}
func (h *fakeHost) Close() error {
	h.closed = true
	return nil
}

func manifestWithBinary(t *testing.T, enabled bool) domain.Manifest {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "driver")
	payload := []byte("driver-binary")
	if err := os.WriteFile(bin, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return domain.Manifest{
		Name:         "echo",
		Version:      "1.0.0",
		Binary:       bin,
		SHA256:       hex.EncodeToString(sum[:]),
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilityTransient},
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pluginsDir := filepath.Join(tmp, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath := filepath.Join(tmp, "dummy-driver")
	if err := os.WriteFile(binPath, []byte("not-a-real-driver"), 0o755); err != nil {
		t.Fatalf("write driver binary: %v", err)
	}
	manifests := []domain.Manifest{{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityTransient},
	}}
	raw, _ := json.Marshal(manifests)
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewDeviceService(deviceout.NewFileManifestStore(pluginsDir), nil, hclog.NewNullLogger())
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid || results[0].Error != "checksum mismatch" {
		t.Fatalf("expected checksum mismatch, got %+v", results[0])
	}
}

func TestDoctorReportsHardware(t *testing.T) {
	t.Parallel()
	host := &fakeHost{supported: false}
	svc := service.NewDeviceService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, true)}}, host, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	r := results[0]
	if !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK || r.HardwareOK || r.Device != "fake" {
		t.Fatalf("unexpected doctor result %+v", r)
	}
}

func TestPulseVerifiesDriverOnce(t *testing.T) {
	t.Parallel()
	host := &fakeHost{supported: true}
	svc := service.NewDeviceService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, true)}}, host, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		out, err := svc.Pulse(ctx, dto.PulseInput{Driver: "echo", Intensity: 0.6, Sharpness: 0.4})
		if err != nil {
			t.Fatalf("pulse %d: %v", i, err)
		}
		if !out.Accepted || out.Driver != "echo" {
			t.Fatalf("unexpected pulse output %+v", out)
		}
	}
	if host.metaCalls != 1 || len(host.pulses) != 3 {
		t.Fatalf("expected one verification and three pulses, got %d / %d", host.metaCalls, len(host.pulses))
	}
	if err := svc.Close(); err != nil || !host.closed {
		t.Fatalf("expected host closed, err=%v", err)
	}
}

func TestPulseReportsUnsupportedHardware(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := map[string]*service.DeviceService{
		"no driver configured": service.NewDeviceService(fakeManifestStore{}, &fakeHost{supported: true}, nil),
		"unknown driver":       service.NewDeviceService(fakeManifestStore{}, &fakeHost{supported: true}, nil),
		"disabled driver":      service.NewDeviceService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, false)}}, &fakeHost{supported: true}, nil),
		"no hardware":          service.NewDeviceService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, true)}}, &fakeHost{supported: false}, nil),
		"no host":              service.NewDeviceService(fakeManifestStore{}, nil, nil),
	}
	for name, svc := range cases {
		driver := "echo"
		if name == "no driver configured" {
			driver = ""
		}
		_, err := svc.Pulse(ctx, dto.PulseInput{Driver: driver, Intensity: 0.5, Sharpness: 0.5})
		if !errors.Is(err, apperrors.ErrHardwareUnsupported) {
			t.Fatalf("%s: expected hardware unsupported, got %v", name, err)
		}
	}
}

func TestPulseRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()
	svc := service.NewDeviceService(fakeManifestStore{}, &fakeHost{supported: true}, nil)
	_, err := svc.Pulse(context.Background(), dto.PulseInput{Driver: "echo", Intensity: 2})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPulseFailureForgetsVerification(t *testing.T) {
	t.Parallel()
	host := &fakeHost{supported: true, pulseErr: errors.New("driver crashed")}
	svc := service.NewDeviceService(fakeManifestStore{manifests: []domain.Manifest{manifestWithBinary(t, true)}}, host, nil)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.Pulse(ctx, dto.PulseInput{Driver: "echo", Intensity: 0.5}); err == nil {
			t.Fatalf("expected pulse error")
		}
	}
	if host.metaCalls != 2 {
		t.Fatalf("expected re-verification after failure, got %d metadata calls", host.metaCalls)
	}
}
