package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

type Capability string

const (
	CapabilityTransient Capability = "transient"
	CapabilityPattern   Capability = "pattern"
)

var (
	ErrDriverDisabled    = errors.New("haptics driver is disabled")
	ErrDriverNotFound    = errors.New("haptics driver not found")
	ErrChecksumMismatch  = errors.New("haptics driver checksum mismatch")
	ErrCapabilityMissing = errors.New("haptics driver capability missing")
	ErrDriverTimeout     = errors.New("haptics driver timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest is one entry of plugins.json.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("driver version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("driver binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("driver sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("driver capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityTransient, CapabilityPattern:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Metadata is what a running driver reports about itself. Supported is false
// when the driver runs but finds no haptic hardware.
type Metadata struct {
	Name         string
	Version      string
	Device       string
	Supported    bool
	Capabilities []Capability
}

// Pulse is a single transient tap.
type Pulse struct {
	Intensity float64
	Sharpness float64
}

func (p Pulse) Validate() error {
	if !unit(p.Intensity) {
		return fmt.Errorf("pulse intensity must be within [0,1]")
	}
	if !unit(p.Sharpness) {
		return fmt.Errorf("pulse sharpness must be within [0,1]")
	}
	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

type PulseResult struct {
	Accepted bool
	Message  string
}
