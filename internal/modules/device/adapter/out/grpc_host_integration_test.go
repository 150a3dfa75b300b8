package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	deviceout "serene/internal/modules/device/adapter/out"
	"serene/internal/modules/device/domain"
)

func TestGRPCHostIntegrationEchoDriver(t *testing.T) {
	binPath, checksum := buildEchoDriver(t)
	manifest := domain.Manifest{
		Name:         "haptics-echo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityTransient},
	}

	host := deviceout.NewGRPCHost(hclog.NewNullLogger())
	defer host.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "haptics-echo" || !metadata.Supported {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	for i := 0; i < 3; i++ {
		result, err := host.Pulse(ctx, manifest, domain.Pulse{Intensity: 0.6, Sharpness: 0.4})
		if err != nil {
			t.Fatalf("pulse %d: %v", i, err)
		}
		if !result.Accepted {
			t.Fatalf("pulse %d rejected: %s", i, result.Message)
		}
	}

	result, err := host.Pulse(ctx, manifest, domain.Pulse{Intensity: 0, Sharpness: 0})
	if err != nil {
		t.Fatalf("zero pulse: %v", err)
	}
	if result.Accepted {
		t.Fatalf("expected zero-intensity pulse to be skipped")
	}
}

func buildEchoDriver(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "haptics-echo")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/haptics-echo")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build echo driver: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built driver: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
