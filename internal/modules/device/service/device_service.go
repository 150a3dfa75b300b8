package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/device/domain"
	"serene/internal/modules/device/dto"
	deviceout "serene/internal/modules/device/port/out"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

type DeviceService struct {
	store  deviceout.ManifestStore
	host   deviceout.Host
	logger hclog.Logger

	mu       sync.Mutex
	verified map[string]domain.Manifest
}

func NewDeviceService(store deviceout.ManifestStore, host deviceout.Host, logger hclog.Logger) *DeviceService {
	return &DeviceService{
		store:    store,
		host:     host,
		logger:   logging.OrNull(logger).Named("device"),
		verified: map[string]domain.Manifest{},
	}
}

func (s *DeviceService) List(ctx context.Context) ([]dto.DriverInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DriverInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.DriverInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *DeviceService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			meta, err := s.host.GetMetadata(ctx, m)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
				result.HardwareOK = meta.Supported
				result.Device = meta.Device
				if !meta.Supported {
					result.Error = "driver reports no haptic hardware"
				}
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Pulse sends one tap to the named driver. Every reason the tap cannot reach
// hardware (unknown, disabled or unsupported driver) wraps
// apperrors.ErrHardwareUnsupported.
func (s *DeviceService) Pulse(ctx context.Context, input dto.PulseInput) (dto.PulseOutput, error) {
	pulse := domain.Pulse{Intensity: input.Intensity, Sharpness: input.Sharpness}
	if err := pulse.Validate(); err != nil {
		return dto.PulseOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	manifest, err := s.runnableManifest(ctx, input.Driver)
	if err != nil {
		return dto.PulseOutput{}, err
	}
	result, err := s.host.Pulse(ctx, manifest, pulse)
	if err != nil {
		s.forget(manifest.Name)
		return dto.PulseOutput{}, err
	}
	return dto.PulseOutput{Driver: manifest.Name, Accepted: result.Accepted, Message: result.Message}, nil
}

func (s *DeviceService) Close() error {
	if s.host == nil {
		return nil
	}
	return s.host.Close()
}

func (s *DeviceService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate driver name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

// runnableManifest verifies a driver once per process: manifest, checksum,
// capability and that the running driver finds hardware.
func (s *DeviceService) runnableManifest(ctx context.Context, name string) (domain.Manifest, error) {
	if name == "" {
		return domain.Manifest{}, fmt.Errorf("%w: no driver configured", apperrors.ErrHardwareUnsupported)
	}
	s.mu.Lock()
	cached, ok := s.verified[name]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}
	if s.host == nil {
		return domain.Manifest{}, fmt.Errorf("%w: no driver host", apperrors.ErrHardwareUnsupported)
	}

	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == name {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("%w: %w: %s", apperrors.ErrHardwareUnsupported, domain.ErrDriverNotFound, name)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %w: %s", apperrors.ErrHardwareUnsupported, domain.ErrDriverDisabled, name)
	}
	if !manifest.HasCapability(domain.CapabilityTransient) {
		return domain.Manifest{}, fmt.Errorf("%w: %w: %s", apperrors.ErrHardwareUnsupported, domain.ErrCapabilityMissing, domain.CapabilityTransient)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	meta, err := s.host.GetMetadata(ctx, manifest)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrDriverTimeout, name)
		}
		return domain.Manifest{}, err
	}
	if !meta.Supported {
		return domain.Manifest{}, fmt.Errorf("%w: driver %s found no device", apperrors.ErrHardwareUnsupported, name)
	}

	s.logger.Info("haptics driver ready", "driver", name, "device", meta.Device)
	s.mu.Lock()
	s.verified[name] = manifest
	s.mu.Unlock()
	return manifest, nil
}

func (s *DeviceService) forget(name string) {
	s.mu.Lock()
	delete(s.verified, name)
	s.mu.Unlock()
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read driver binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
