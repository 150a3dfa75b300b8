package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "haptics"
	serviceName       = "serene.haptics.v1.HapticsDriver"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodPulse       = "/" + serviceName + "/Pulse"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SERENE_HAPTICS_DRIVER",
	MagicCookieValue: "serene",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Device       string   `json:"device"`
	Supported    bool     `json:"supported"`
	Capabilities []string `json:"capabilities"`
}

type PulseRequest struct {
	Intensity float64 `json:"intensity"`
	Sharpness float64 `json:"sharpness"`
}

type PulseResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

type HapticsDriverServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Pulse(ctx context.Context, in *PulseRequest) (*PulseResponse, error)
}

type HapticsDriverClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Pulse(ctx context.Context, in *PulseRequest) (*PulseResponse, error)
}

type hapticsDriverClient struct {
	conn *grpc.ClientConn
}

func NewHapticsDriverClient(conn *grpc.ClientConn) HapticsDriverClient {
	return &hapticsDriverClient{conn: conn}
}

func (c *hapticsDriverClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hapticsDriverClient) Pulse(ctx context.Context, in *PulseRequest) (*PulseResponse, error) {
	out := &PulseResponse{}
	if err := c.conn.Invoke(ctx, methodPulse, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterHapticsDriverServer(server grpc.ServiceRegistrar, impl HapticsDriverServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*HapticsDriverServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unaryHandler(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Pulse", Handler: unaryHandler(methodPulse, impl.Pulse)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/haptics-driver-v1.proto",
	}, impl)
}

// unaryHandler decodes a Req, runs it through the server interceptor when one
// is installed and calls fn.
func unaryHandler[Req, Resp any](method string, fn func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("%s: unexpected request type %T", method, req)
			}
			return fn(ctx, typed)
		})
	}
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl HapticsDriverServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterHapticsDriverServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewHapticsDriverClient(conn), nil
}

func PluginMap(impl HapticsDriverServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
