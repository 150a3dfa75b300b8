package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	devicerpc "serene/internal/modules/device/adapter/out/rpc"
	"serene/internal/modules/device/domain"
	deviceout "serene/internal/modules/device/port/out"
	"serene/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
)

type driverConn struct {
	binary string
	client *plugin.Client
	rpc    devicerpc.HapticsDriverClient
}

// GRPCHost keeps one driver process per manifest alive between calls so a
// pulse does not pay for a process start. Close stops every driver.
type GRPCHost struct {
	logger hclog.Logger

	mu    sync.Mutex
	conns map[string]*driverConn
}

func NewGRPCHost(logger hclog.Logger) *GRPCHost {
	return &GRPCHost{logger: logging.OrNull(logger).Named("driver"), conns: map[string]*driverConn{}}
}

var _ deviceout.Host = (*GRPCHost)(nil)

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	conn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := conn.rpc.GetMetadata(callCtx)
	if err != nil {
		h.drop(manifest.Name)
		return domain.Metadata{}, h.callError("get metadata", callCtx, err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{
		Name:         meta.Name,
		Version:      meta.Version,
		Device:       meta.Device,
		Supported:    meta.Supported,
		Capabilities: capabilities,
	}, nil
}

func (h *GRPCHost) Pulse(ctx context.Context, manifest domain.Manifest, pulse domain.Pulse) (domain.PulseResult, error) {
	conn, err := h.connect(manifest)
	if err != nil {
		return domain.PulseResult{}, err
	}
	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := conn.rpc.Pulse(callCtx, &devicerpc.PulseRequest{Intensity: pulse.Intensity, Sharpness: pulse.Sharpness})
	if err != nil {
		h.drop(manifest.Name)
		return domain.PulseResult{}, h.callError("pulse", callCtx, err)
	}
	return domain.PulseResult{Accepted: response.Accepted, Message: response.Message}, nil
}

func (h *GRPCHost) Close() error {
	h.mu.Lock()
	conns := h.conns
	h.conns = map[string]*driverConn{}
	h.mu.Unlock()
	for _, conn := range conns {
		conn.client.Kill()
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (*driverConn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[manifest.Name]; ok {
		if conn.binary == manifest.Binary && !conn.client.Exited() {
			return conn, nil
		}
		conn.client.Kill()
		delete(h.conns, manifest.Name)
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  devicerpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          devicerpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.With("driver", manifest.Name),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start driver client: %w", err)
	}
	raw, err := rpcClient.Dispense(devicerpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense driver: %w", err)
	}
	typed, ok := raw.(devicerpc.HapticsDriverClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("driver rpc client type mismatch")
	}
	conn := &driverConn{binary: manifest.Binary, client: client, rpc: typed}
	h.conns[manifest.Name] = conn
	h.logger.Debug("driver started", "driver", manifest.Name)
	return conn, nil
}

func (h *GRPCHost) drop(name string) {
	h.mu.Lock()
	conn, ok := h.conns[name]
	delete(h.conns, name)
	h.mu.Unlock()
	if ok {
		conn.client.Kill()
	}
}

func (h *GRPCHost) callError(op string, callCtx context.Context, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrDriverTimeout, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
