package grpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/mock"
	"github.com/MKhiriev/go-dashboard/internal/service"
)

func newTestHandler(t *testing.T) (*Handler, *mock.MockAppInfoService) {
	t.Helper()

	appInfo := mock.NewMockAppInfoService(gomock.NewController(t))
	return NewHandler(&service.Services{AppInfoService: appInfo}, logger.Nop()), appInfo
}

func check(t *testing.T, h *Handler, name string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	resp, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestNewHandler_NamedServiceStartsNotServing(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ServiceName))
}

func TestProbeHealth(t *testing.T) {
	h, appInfo := newTestHandler(t)

	appInfo.EXPECT().Health(gomock.Any()).Return(nil)
	h.ProbeHealth(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, h, ServiceName))

	appInfo.EXPECT().Health(gomock.Any()).Return(errors.Join(service.ErrUnhealthy, errors.New("redis: dial timeout")))
	h.ProbeHealth(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ServiceName))
}

func TestCheck_UnknownService(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestShutdown_StopsServing(t *testing.T) {
	h, appInfo := newTestHandler(t)
	appInfo.EXPECT().Health(gomock.Any()).Return(nil)
	h.ProbeHealth(context.Background())

	h.Shutdown()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ""))
}

func TestUnaryLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(nil, logger.New("test", &buf))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(traceIDMetadataKey, "trace-42"))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	var handlerCtx context.Context
	resp, err := h.UnaryLoggingInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		handlerCtx = ctx
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	require.NotNil(t, handlerCtx)

	line := buf.String()
	assert.Contains(t, line, `"trace_id":"trace-42"`)
	assert.Contains(t, line, `"method":"/grpc.health.v1.Health/Check"`)
	assert.Contains(t, line, `"code":"OK"`)
}

func TestUnaryLoggingInterceptor_PassesErrorThrough(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(nil, logger.New("test", &buf))
	want := status.Error(codes.Unavailable, "down")

	_, err := h.UnaryLoggingInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"},
		func(ctx context.Context, req any) (any, error) { return nil, want })

	assert.Equal(t, want, err)
	assert.Contains(t, buf.String(), `"code":"Unavailable"`)
	assert.Contains(t, buf.String(), `"trace_id"`)
}
