package http

import (
	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/gorilla/sessions"
)

type Handler struct {
	services *service.Services

	// sessions keeps the OAuth state between login and callback.
	sessions sessions.Store
	limiter  *ipRateLimiter

	server config.Server
	oauth  config.OAuth

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, store sessions.Store, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		sessions: store,
		limiter:  newIPRateLimiter(cfg.Server.PublicRateLimit, cfg.Server.PublicRateBurst),
		server:   cfg.Server,
		oauth:    cfg.OAuth,
		logger:   logger,
	}
}
