package domain

import (
	"math"
	"strings"
	"testing"
)

func validManifest() Manifest {
	return Manifest{
		Name:         "haptics-echo",
		Version:      "1.0.0",
		Binary:       "/tmp/haptics-echo",
		SHA256:       strings.Repeat("a", 64),
		Enabled:      true,
		Capabilities: []Capability{CapabilityTransient},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("expected valid manifest: %v", err)
	}

	cases := map[string]func(*Manifest){
		"missing name":       func(m *Manifest) { m.Name = "" },
		"missing version":    func(m *Manifest) { m.Version = "" },
		"missing binary":     func(m *Manifest) { m.Binary = "" },
		"uppercase checksum": func(m *Manifest) { m.SHA256 = strings.Repeat("A", 64) },
		"no capabilities":    func(m *Manifest) { m.Capabilities = nil },
		"unknown capability": func(m *Manifest) { m.Capabilities = []Capability{"rumble"} },
		"duplicate capability": func(m *Manifest) {
			m.Capabilities = []Capability{CapabilityTransient, CapabilityTransient}
		},
	}
	for name, mutate := range cases {
		m := validManifest()
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestPulseValidate(t *testing.T) {
	t.Parallel()
	if err := (Pulse{Intensity: 1, Sharpness: 0}).Validate(); err != nil {
		t.Fatalf("expected valid pulse: %v", err)
	}
	for _, p := range []Pulse{{Intensity: -0.1}, {Intensity: 1.1}, {Sharpness: 2}, {Intensity: math.NaN()}} {
		if err := p.Validate(); err == nil {
			t.Fatalf("expected invalid pulse %+v", p)
		}
	}
}

func TestHasCapability(t *testing.T) {
	t.Parallel()
	m := validManifest()
	if !m.HasCapability(CapabilityTransient) || m.HasCapability(CapabilityPattern) {
		t.Fatalf("unexpected capability check for %+v", m.Capabilities)
	}
}
