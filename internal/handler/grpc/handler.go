// Package grpc exposes the dashboard's gRPC surface: the standard
// grpc.health.v1 service, fed by the same dependency checks as /healthz.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/service"
)

// ServiceName is the service name reported alongside the overall ("")
// status.
const ServiceName = "go-dashboard"

// Handler is the root gRPC transport handler.
//
// The health status is not computed per call: ProbeHealth runs the
// service checks and publishes the result, and Check/Watch callers read
// the last published status.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a Handler. The named service starts NOT_SERVING
// until the first successful probe.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register installs the handler's services on s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// ProbeHealth runs the dependency checks once and publishes the outcome
// for both the overall and the named service.
func (h *Handler) ProbeHealth(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.AppInfoService.Health(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health probe failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown flips every service to NOT_SERVING so that load balancers drain
// the instance before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
