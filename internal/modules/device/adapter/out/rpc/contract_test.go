package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"google.golang.org/grpc"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	t.Parallel()
	codec := jsonCodec{}
	raw, err := codec.Marshal(&PulseRequest{Intensity: 0.6, Sharpness: 0.4})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"intensity":0.6,"sharpness":0.4}` {
		t.Fatalf("unexpected wire format %s", raw)
	}
	out := &PulseRequest{}
	if err := codec.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Intensity != 0.6 || out.Sharpness != 0.4 || codec.Name() != "json" {
		t.Fatalf("unexpected decode %+v", out)
	}
}

func TestPluginMapRegistersHapticsKey(t *testing.T) {
	t.Parallel()
	m := PluginMap(nil)
	if _, ok := m[PluginMapKey]; !ok || len(m) != 1 {
		t.Fatalf("unexpected plugin map %v", m)
	}
}

type recordingDriver struct{ pulses []PulseRequest }

func (d *recordingDriver) GetMetadata(context.Context, *Empty) (*Metadata, error) {
	return &Metadata{Name: "recorder", Supported: true}, nil
}

func (d *recordingDriver) Pulse(_ context.Context, in *PulseRequest) (*PulseResponse, error) {
	d.pulses = append(d.pulses, *in)
	return &PulseResponse{Accepted: true}, nil
}

func decodeJSON(raw string) func(any) error {
	return func(v any) error { return json.Unmarshal([]byte(raw), v) }
}

func TestUnaryHandlerDecodesAndCalls(t *testing.T) {
	t.Parallel()
	driver := &recordingDriver{}
	handler := unaryHandler(methodPulse, driver.Pulse)

	out, err := handler(driver, context.Background(), decodeJSON(`{"intensity":0.8,"sharpness":0.2}`), nil)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp, ok := out.(*PulseResponse); !ok || !resp.Accepted {
		t.Fatalf("unexpected response %#v", out)
	}
	if len(driver.pulses) != 1 || driver.pulses[0].Intensity != 0.8 {
		t.Fatalf("unexpected pulses %+v", driver.pulses)
	}

	if _, err := handler(driver, context.Background(), func(any) error { return errors.New("bad frame") }, nil); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestUnaryHandlerRunsInterceptor(t *testing.T) {
	t.Parallel()
	driver := &recordingDriver{}
	handler := unaryHandler(methodGetMetadata, driver.GetMetadata)
	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return next(ctx, req)
	}

	out, err := handler(driver, context.Background(), decodeJSON(`{}`), interceptor)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if seen != methodGetMetadata {
		t.Fatalf("interceptor saw %q", seen)
	}
	if meta, ok := out.(*Metadata); !ok || meta.Name != "recorder" {
		t.Fatalf("unexpected response %#v", out)
	}
}
