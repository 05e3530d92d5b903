package handler

import (
	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/handler/grpc"
	"github.com/MKhiriev/go-cinema/internal/handler/http"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/gorilla/sessions"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, sessionStore sessions.Store, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, sessionStore, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
