package main

import (
	"context"
	"fmt"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	devicerpc "serene/internal/modules/device/adapter/out/rpc"
)

// server is a driver without hardware: it accepts pulses and writes them to
// stderr, which the host forwards into its own log.
type server struct {
	logger hclog.Logger
}

func (s *server) GetMetadata(_ context.Context, _ *devicerpc.Empty) (*devicerpc.Metadata, error) {
	return &devicerpc.Metadata{
		Name:         "haptics-echo",
		Version:      "1.0.0",
		Device:       "echo",
		Supported:    true,
		Capabilities: []string{"transient"},
	}, nil
}

func (s *server) Pulse(_ context.Context, in *devicerpc.PulseRequest) (*devicerpc.PulseResponse, error) {
	if in.Intensity < 0 || in.Intensity > 1 || in.Sharpness < 0 || in.Sharpness > 1 {
		return nil, fmt.Errorf("pulse out of range: intensity=%v sharpness=%v", in.Intensity, in.Sharpness)
	}
	if in.Intensity == 0 {
		return &devicerpc.PulseResponse{Accepted: false, Message: "zero intensity"}, nil
	}
	s.logger.Info("pulse", "intensity", in.Intensity, "sharpness", in.Sharpness)
	return &devicerpc.PulseResponse{Accepted: true, Message: "ok"}, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Info,
		Output:     os.Stderr,
		JSONFormat: true,
	})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: devicerpc.HandshakeConfig,
		Plugins:         devicerpc.PluginMap(&server{logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
