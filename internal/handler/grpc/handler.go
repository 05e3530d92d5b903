// Package grpc exposes the standard gRPC health checking service of the
// catalog server, used by orchestrators for liveness and readiness probes.
package grpc

import (
	"github.com/MKhiriev/go-cinema/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CatalogServiceName is the service name reported next to the overall ""
// status.
const CatalogServiceName = "go-cinema.Catalog"

// Handler is the root gRPC transport handler.
//
// It owns the health status of the server. A handler instance is created
// once at startup and shared by the gRPC server.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose services report SERVING.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(true)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing switches the reported status of every service.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(CatalogServiceName, status)
	h.logger.Debug().Str("status", status.String()).Msg("gRPC health status changed")
}

// Shutdown reports NOT_SERVING and ignores later status changes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
